package services

import "sync"

// eventLocks serializes booking attempts per event. The capacity check and
// the increment must not interleave for the same event; bookings against
// different events proceed independently. The storage layer's row lock is
// the backstop for multi-process deployments.
type eventLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[int]*sync.Mutex)}
}

// acquire returns the mutex for the given event, creating it on first use,
// and locks it. Callers must call the returned unlock function.
func (l *eventLocks) acquire(eventID int) func() {
	l.mu.Lock()
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
