package httpapi

import (
	"sync"

	"github.com/hamed0406/deusexludus/internal/domain"
)

// actorLocks serializes read-modify-write cycles per actor within this
// process. Entries are dropped once nobody holds or waits on them.
type actorLocks struct {
	mu    sync.Mutex
	locks map[domain.ActorID]*actorLock
}

type actorLock struct {
	mu   sync.Mutex
	refs int
}

func (l *actorLocks) lock(id domain.ActorID) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = map[domain.ActorID]*actorLock{}
	}
	e := l.locks[id]
	if e == nil {
		e = &actorLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
