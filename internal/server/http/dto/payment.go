package dto

import "time"

// InitiatePaymentRequest selects the accepted bid to pay.
type InitiatePaymentRequest struct {
	ProjectID string `json:"projectId"`
	BidID     string `json:"bidId"`
}

// CheckoutResponse points the payer at the checkout page.
type CheckoutResponse struct {
	PaymentID string `json:"paymentId"`
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	Mock      bool   `json:"mock"`
}

// PaymentResponse represents a payment.
type PaymentResponse struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"projectId"`
	BidID        string     `json:"bidId"`
	CustomerID   string     `json:"customerId"`
	FreelancerID string     `json:"freelancerId"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"status"`
	SessionID    string     `json:"sessionId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// WebhookResponse acknowledges a gateway callback.
type WebhookResponse struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome,omitempty"`
}
