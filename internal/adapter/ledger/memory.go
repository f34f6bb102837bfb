package ledger

import (
	"context"
	"sync"
	"time"
)

// MemoryLedger keeps event ids in process memory until they expire.
type MemoryLedger struct {
	mu     sync.Mutex
	ttl    time.Duration
	events map[string]time.Time
	now    func() time.Time
}

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger(ttl time.Duration) *MemoryLedger {
	return &MemoryLedger{ttl: ttl, events: make(map[string]time.Time), now: time.Now}
}

// Seen reports whether eventID was marked and has not expired.
func (l *MemoryLedger) Seen(_ context.Context, eventID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	expires, ok := l.events[eventID]
	if !ok {
		return false, nil
	}
	if !l.now().Before(expires) {
		delete(l.events, eventID)
		return false, nil
	}
	return true, nil
}

// Mark records eventID and drops expired entries.
func (l *MemoryLedger) Mark(_ context.Context, eventID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for id, expires := range l.events {
		if !now.Before(expires) {
			delete(l.events, id)
		}
	}
	l.events[eventID] = now.Add(l.ttl)
	return nil
}

// Len returns the number of remembered events.
func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
