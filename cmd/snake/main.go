package main

import (
	"math/rand"
	"time"

	"github.com/battlesnakeio/solo/cmd/snake/commands"
)

func main() {
	rand.Seed(time.Now().UnixNano())
	commands.Execute()
}
