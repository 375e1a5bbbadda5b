package rules

// checkForDeath looks at the cell the head is about to move to and returns
// the death cause, or "" when the move is safe. Every body cell counts,
// the tail included, since it has not moved out of the way yet.
func checkForDeath(snake []Point, newHead Point) string {
	if deathByOutOfBounds(newHead) {
		return DeathCauseWallCollision
	}
	for _, b := range snake {
		if deathByBodyCollision(newHead, b) {
			return DeathCauseSnakeSelfCollision
		}
	}
	return ""
}

func deathByOutOfBounds(head Point) bool {
	return !InBounds(head)
}

func deathByBodyCollision(head, body Point) bool {
	return head.Equal(body)
}
