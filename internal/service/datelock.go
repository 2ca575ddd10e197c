package service

import (
	"sync"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
)

// dateLocks serializes work per calendar date. Entries are dropped once no
// goroutine holds or waits on them.
type dateLocks struct {
	mu    sync.Mutex
	locks map[string]*dateLock
}

type dateLock struct {
	sync.Mutex
	refs int
}

func newDateLocks() *dateLocks {
	return &dateLocks{locks: make(map[string]*dateLock)}
}

// lock blocks until day is free and returns the matching unlock.
func (l *dateLocks) lock(day time.Time) func() {
	key := domain.NormalizeDate(day).Format(domain.DateLayout)

	l.mu.Lock()
	dl, ok := l.locks[key]
	if !ok {
		dl = &dateLock{}
		l.locks[key] = dl
	}
	dl.refs++
	l.mu.Unlock()

	dl.Lock()
	return func() {
		dl.Unlock()
		l.mu.Lock()
		dl.refs--
		if dl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *dateLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
