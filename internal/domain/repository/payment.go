package repository

import (
	"context"

	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// PaymentPreparation receives the locked project, bid and the bid's existing
// payment (nil when none). It returns the payment to use: existing is reused
// as is, anything else is inserted.
type PaymentPreparation func(project model.Project, bid model.Bid, existing *model.Payment) (*model.Payment, error)

// PaymentMutation edits a locked payment and reports whether it changed.
// Nothing is written when it reports no change.
type PaymentMutation func(payment *model.Payment) (bool, error)

// PaymentRepository describes persistence operations with payments.
type PaymentRepository interface {
	Prepare(ctx context.Context, projectID, bidID string, fn PaymentPreparation) (*model.Payment, error)
	// AttachCheckout stores the gateway session unless one is already set
	// and returns the stored payment.
	AttachCheckout(ctx context.Context, id, sessionID, url string) (*model.Payment, error)
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	Complete(ctx context.Context, id string, fn PaymentMutation) (*model.Payment, bool, error)
}
