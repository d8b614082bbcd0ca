package services

import (
	"slices"
	"sync"
)

// AccountLocker serializes read-modify-write sequences per account.
// Callers that need several accounts get them in one call; IDs are
// deduplicated and acquired in sorted order so two callers can never
// wait on each other in opposite directions.
//
// LockAll excludes every per-account holder at once; it is meant for
// operations that touch the whole store.
type AccountLocker struct {
	barrier sync.RWMutex
	mu      sync.Mutex
	locks   map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

// NewAccountLocker returns an empty locker.
func NewAccountLocker() *AccountLocker {
	return &AccountLocker{locks: make(map[string]*accountLock)}
}

// Lock blocks until every listed account is held and returns the function
// that releases them. Entries are dropped once nobody references them.
func (l *AccountLocker) Lock(ids ...string) (unlock func()) {
	ordered := lockOrder(ids)

	l.barrier.RLock()
	held := make([]*accountLock, 0, len(ordered))
	for _, id := range ordered {
		al := l.acquireRef(id)
		al.mu.Lock()
		held = append(held, al)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.releaseRef(ordered[i])
		}
		l.barrier.RUnlock()
	}
}

// LockAll waits for every outstanding Lock to be released and keeps new
// ones out until the returned function is called.
func (l *AccountLocker) LockAll() (unlock func()) {
	l.barrier.Lock()
	return l.barrier.Unlock
}

func (l *AccountLocker) acquireRef(id string) *accountLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	al, ok := l.locks[id]
	if !ok {
		al = &accountLock{}
		l.locks[id] = al
	}
	al.refs++
	return al
}

func (l *AccountLocker) releaseRef(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	al := l.locks[id]
	al.refs--
	if al.refs == 0 {
		delete(l.locks, id)
	}
}

// size reports how many accounts currently have a lock entry.
func (l *AccountLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// lockOrder returns the sorted, deduplicated set of ids.
func lockOrder(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
