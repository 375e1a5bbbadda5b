package commands

import (
	"sync"

	"github.com/battlesnakeio/solo/rules"
)

// snapshotHolder keeps the latest snapshot received from a watched game.
type snapshotHolder struct {
	sync.RWMutex
	latest  rules.Snapshot
	count   int
	ffc     chan rules.Snapshot
	updates chan struct{}
	done    chan struct{}
}

func newSnapshotHolder() *snapshotHolder {
	return &snapshotHolder{
		ffc:     make(chan rules.Snapshot, 1),
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (sh *snapshotHolder) append(snap rules.Snapshot) {
	sh.Lock()
	defer sh.Unlock()

	if sh.count == 0 {
		sh.ffc <- snap
		close(sh.ffc)
	}
	sh.latest = snap
	sh.count++

	select {
	case sh.updates <- struct{}{}:
	default:
	}
}

func (sh *snapshotHolder) get() rules.Snapshot {
	sh.RLock()
	defer sh.RUnlock()

	return sh.latest
}

func (sh *snapshotHolder) received() int {
	sh.RLock()
	defer sh.RUnlock()

	return sh.count
}

// initialSnapshot yields the first snapshot once it arrives.
func (sh *snapshotHolder) initialSnapshot() <-chan rules.Snapshot { return sh.ffc }

// updated signals that get has something new. Bursts coalesce.
func (sh *snapshotHolder) updated() <-chan struct{} { return sh.updates }

// finish marks the stream as ended.
func (sh *snapshotHolder) finish() { close(sh.done) }

func (sh *snapshotHolder) finished() <-chan struct{} { return sh.done }
