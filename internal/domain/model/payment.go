package model

import "time"

// PaymentStatus describes payment lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// Payment settles one accepted bid. Amount is copied from the bid at creation.
type Payment struct {
	ID           string
	ProjectID    string
	BidID        string
	CustomerID   string
	FreelancerID string
	Amount       float64
	Status       PaymentStatus
	ExternalID   string
	CheckoutURL  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
}

// HasCheckout reports whether a gateway session is attached.
func (p Payment) HasCheckout() bool {
	return p.ExternalID != ""
}

// Checkout is returned to the payer after initiating a payment.
type Checkout struct {
	PaymentID string
	SessionID string
	URL       string
	Mock      bool
}
