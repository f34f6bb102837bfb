package model

import "time"

// BidStatus describes bid lifecycle.
type BidStatus string

const (
	BidStatusPending  BidStatus = "PENDING"
	BidStatusAccepted BidStatus = "ACCEPTED"
	BidStatusRejected BidStatus = "REJECTED"
)

// CanTransitionTo reports whether next directly follows s.
// Resolved bids are terminal.
func (s BidStatus) CanTransitionTo(next BidStatus) bool {
	return s == BidStatusPending && (next == BidStatusAccepted || next == BidStatusRejected)
}

// Bid is a freelancer's priced proposal against a project.
type Bid struct {
	ID           string
	ProjectID    string
	FreelancerID string
	Amount       float64
	Proposal     string
	Status       BidStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
