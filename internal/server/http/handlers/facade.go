package handlers

import (
	"context"
	"time"

	"github.com/polkiloo/gigmarket/internal/adapter/gateway"
	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, name string, role model.Role) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (model.Identity, error)
}

// ProjectFacade encapsulates project operations exposed via HTTP.
type ProjectFacade interface {
	CreateProject(ctx context.Context, actor model.Identity, title, description string, budget float64, deadline *time.Time) (*model.Project, error)
	PublishProject(ctx context.Context, actor model.Identity, projectID string) (*model.Project, error)
	EditProject(ctx context.Context, actor model.Identity, projectID string, patch model.ProjectPatch) (*model.Project, error)
	Project(ctx context.Context, projectID string) (*model.ProjectDetails, error)
	Projects(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error)
}

// BidFacade encapsulates bidding operations.
type BidFacade interface {
	SubmitBid(ctx context.Context, actor model.Identity, projectID string, amount float64, proposal string) (*model.Bid, error)
	ResolveBid(ctx context.Context, actor model.Identity, bidID string, decision model.BidStatus) (*model.Bid, error)
}

// PaymentFacade encapsulates checkout and reconciliation.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, actor model.Identity, projectID, bidID string) (*model.Checkout, error)
	Payment(ctx context.Context, actor model.Identity, paymentID string) (*model.Payment, error)
	ReconcilePayment(ctx context.Context, cb gateway.Callback) (model.ReconcileOutcome, error)
}

// DashboardFacade provides per-role counters.
type DashboardFacade interface {
	DashboardStats(ctx context.Context, actor model.Identity) (*model.DashboardSummary, error)
}

// HealthFacade reports backing store availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	ProjectFacade
	BidFacade
	PaymentFacade
	DashboardFacade
	HealthFacade
}
