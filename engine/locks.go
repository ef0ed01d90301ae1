package engine

import (
	"sync"

	"github.com/google/uuid"
)

// wellboreLocks serializes recomputes per wellbore inside this process.
// Cross-process protection comes from the advisory lock taken inside the
// transaction; this keeps goroutines in one process from contending on it.
type wellboreLocks struct {
	mu sync.Mutex
	m  map[uuid.UUID]*sync.Mutex
}

func newWellboreLocks() *wellboreLocks {
	return &wellboreLocks{m: make(map[uuid.UUID]*sync.Mutex)}
}

// acquire blocks until the wellbore's lock is held and returns the release
// function. Entries are kept for the life of the process; the universe of
// wellbores is small enough that reclaiming them is not worth the dance.
func (l *wellboreLocks) acquire(id uuid.UUID) func() {
	l.mu.Lock()
	mu, ok := l.m[id]
	if !ok {
		mu = &sync.Mutex{}
		l.m[id] = mu
	}
	l.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}
