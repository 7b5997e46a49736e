// Package scopelock provides mutual exclusion keyed by an arbitrary
// comparable value. Callers holding different keys never block each other
// and idle keys are released from memory.
package scopelock

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// Locker hands out one exclusive hold per key.
type Locker[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*entry
}

// New constructs an empty Locker.
func New[K comparable]() *Locker[K] {
	return &Locker[K]{
		entries: make(map[K]*entry),
	}
}

// Lock blocks until the key is held or the context is done. The returned
// function releases the hold and must be called exactly once.
func (l *Locker[K]) Lock(ctx context.Context, key K) (func(), error) {
	e := l.acquire(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			<-e.sem
			l.release(key, e)
		})
	}

	return unlock, nil
}

// Len reports how many keys are currently held or waited on.
func (l *Locker[K]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

func (l *Locker[K]) acquire(key K) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, exists := l.entries[key]
	if !exists {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++

	return e
}

func (l *Locker[K]) release(key K, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
