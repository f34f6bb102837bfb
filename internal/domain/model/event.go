package model

// EventKind classifies verified gateway callbacks.
type EventKind int

const (
	EventIgnored EventKind = iota
	EventCheckoutCompleted
)

// GatewayEvent is a verified payment gateway callback.
type GatewayEvent struct {
	ID        string
	Kind      EventKind
	Type      string
	PaymentID string
	SessionID string
}

// ReconcileOutcome reports what a callback did.
type ReconcileOutcome string

const (
	OutcomeCompleted ReconcileOutcome = "completed"
	OutcomeDuplicate ReconcileOutcome = "duplicate"
	OutcomeUnknown   ReconcileOutcome = "unknown_payment"
	OutcomeIgnored   ReconcileOutcome = "ignored"
)
