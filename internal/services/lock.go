package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// KeyedMutex is an in-process UserLocker. Entries are reference counted and
// removed when no caller holds or waits for them.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*keyedLock
}

type keyedLock struct {
	sem  chan struct{}
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[uuid.UUID]*keyedLock)}
}

// Lock blocks until the lock for userID is held or ctx is done.
func (m *KeyedMutex) Lock(ctx context.Context, userID uuid.UUID) (context.Context, func(), error) {
	m.mu.Lock()
	l, ok := m.locks[userID]
	if !ok {
		l = &keyedLock{sem: make(chan struct{}, 1)}
		m.locks[userID] = l
	}
	l.refs++
	m.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		m.release(userID, l)
		return nil, nil, ctx.Err()
	}

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			<-l.sem
			m.release(userID, l)
		})
	}, nil
}

func (m *KeyedMutex) release(userID uuid.UUID, l *keyedLock) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(m.locks, userID)
	}
}

// size returns the number of tracked users.
func (m *KeyedMutex) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
