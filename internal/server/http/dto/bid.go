package dto

import "time"

// CreateBidRequest describes a bid on a project.
type CreateBidRequest struct {
	Amount   float64 `json:"amount"`
	Proposal string  `json:"proposal"`
}

// ResolveBidRequest carries the owner's decision: ACCEPTED or REJECTED.
type ResolveBidRequest struct {
	Status string `json:"status"`
}

// BidResponse represents a bid.
type BidResponse struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	FreelancerID string    `json:"freelancerId"`
	Amount       float64   `json:"amount"`
	Proposal     string    `json:"proposal"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
