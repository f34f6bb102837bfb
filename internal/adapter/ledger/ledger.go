// Package ledger remembers which gateway events were already applied so a
// redelivered callback can be acknowledged without touching the store.
package ledger

import "context"

// Ledger records processed gateway event ids.
type Ledger interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}
