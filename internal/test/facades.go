package test

import (
	"context"
	"time"

	"github.com/polkiloo/gigmarket/internal/adapter/gateway"
	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// FixedTime is the timestamp default stubs put on returned entities.
var FixedTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, model.Role) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (model.Identity, error)
}

// Register returns a user with the requested role and a stub token.
func (s AuthFacadeStub) Register(ctx context.Context, email, password, name string, role model.Role) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, name, role)
	}
	user := &model.User{ID: "user-1", Email: email, Name: name, Role: role, CreatedAt: FixedTime}
	return user, role.String() + ":" + user.ID, nil
}

// Authenticate returns a customer with a stub token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	user := &model.User{ID: "user-1", Email: email, Name: "User", Role: model.RoleCustomer, CreatedAt: FixedTime}
	return user, "CUSTOMER:user-1", nil
}

// ParseToken decodes "<ROLE>:<userID>" tokens unless overridden.
func (s AuthFacadeStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return ParseStubToken(token)
}

// ProjectFacadeStub provides controllable behaviour for project endpoints.
type ProjectFacadeStub struct {
	CreateFn  func(context.Context, model.Identity, string, string, float64, *time.Time) (*model.Project, error)
	PublishFn func(context.Context, model.Identity, string) (*model.Project, error)
	EditFn    func(context.Context, model.Identity, string, model.ProjectPatch) (*model.Project, error)
	DetailsFn func(context.Context, string) (*model.ProjectDetails, error)
	ListFn    func(context.Context, model.ProjectFilter) ([]model.Project, error)
}

// CreateProject delegates to provided function or returns a draft.
func (s ProjectFacadeStub) CreateProject(ctx context.Context, actor model.Identity, title, description string, budget float64, deadline *time.Time) (*model.Project, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, title, description, budget, deadline)
	}
	return &model.Project{
		ID:          "project-1",
		CustomerID:  actor.UserID,
		Title:       title,
		Description: description,
		Budget:      budget,
		Deadline:    deadline,
		Status:      model.ProjectStatusDraft,
		CreatedAt:   FixedTime,
		UpdatedAt:   FixedTime,
	}, nil
}

// PublishProject returns an open project by default.
func (s ProjectFacadeStub) PublishProject(ctx context.Context, actor model.Identity, projectID string) (*model.Project, error) {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, actor, projectID)
	}
	return &model.Project{ID: projectID, CustomerID: actor.UserID, Status: model.ProjectStatusOpen}, nil
}

// EditProject returns the project unchanged by default.
func (s ProjectFacadeStub) EditProject(ctx context.Context, actor model.Identity, projectID string, patch model.ProjectPatch) (*model.Project, error) {
	if s.EditFn != nil {
		return s.EditFn(ctx, actor, projectID, patch)
	}
	return &model.Project{ID: projectID, CustomerID: actor.UserID, Status: model.ProjectStatusDraft}, nil
}

// Project returns a project without bids by default.
func (s ProjectFacadeStub) Project(ctx context.Context, projectID string) (*model.ProjectDetails, error) {
	if s.DetailsFn != nil {
		return s.DetailsFn(ctx, projectID)
	}
	return &model.ProjectDetails{Project: model.Project{ID: projectID, Status: model.ProjectStatusOpen}}, nil
}

// Projects returns a single open project by default.
func (s ProjectFacadeStub) Projects(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.Project{{ID: "project-1", Status: model.ProjectStatusOpen}}, nil
}

// BidFacadeStub simulates bidding.
type BidFacadeStub struct {
	SubmitFn  func(context.Context, model.Identity, string, float64, string) (*model.Bid, error)
	ResolveFn func(context.Context, model.Identity, string, model.BidStatus) (*model.Bid, error)
}

// SubmitBid returns a pending bid by default.
func (s BidFacadeStub) SubmitBid(ctx context.Context, actor model.Identity, projectID string, amount float64, proposal string) (*model.Bid, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, actor, projectID, amount, proposal)
	}
	return &model.Bid{
		ID:           "bid-1",
		ProjectID:    projectID,
		FreelancerID: actor.UserID,
		Amount:       amount,
		Proposal:     proposal,
		Status:       model.BidStatusPending,
	}, nil
}

// ResolveBid returns the bid with the decided status by default.
func (s BidFacadeStub) ResolveBid(ctx context.Context, actor model.Identity, bidID string, decision model.BidStatus) (*model.Bid, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, actor, bidID, decision)
	}
	return &model.Bid{ID: bidID, Status: decision}, nil
}

// PaymentFacadeStub simulates checkout and reconciliation.
type PaymentFacadeStub struct {
	InitiateFn  func(context.Context, model.Identity, string, string) (*model.Checkout, error)
	PaymentFn   func(context.Context, model.Identity, string) (*model.Payment, error)
	ReconcileFn func(context.Context, gateway.Callback) (model.ReconcileOutcome, error)
}

// InitiatePayment returns a mock checkout by default.
func (s PaymentFacadeStub) InitiatePayment(ctx context.Context, actor model.Identity, projectID, bidID string) (*model.Checkout, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, actor, projectID, bidID)
	}
	return &model.Checkout{PaymentID: "payment-1", SessionID: "mock_payment-1", URL: "/payments/success?payment_id=payment-1", Mock: true}, nil
}

// Payment returns a pending payment by default.
func (s PaymentFacadeStub) Payment(ctx context.Context, actor model.Identity, paymentID string) (*model.Payment, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, actor, paymentID)
	}
	return &model.Payment{ID: paymentID, CustomerID: actor.UserID, Status: model.PaymentStatusPending, CreatedAt: FixedTime}, nil
}

// ReconcilePayment reports a completed payment by default.
func (s PaymentFacadeStub) ReconcilePayment(ctx context.Context, cb gateway.Callback) (model.ReconcileOutcome, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, cb)
	}
	return model.OutcomeCompleted, nil
}

// DashboardFacadeStub returns configured counters.
type DashboardFacadeStub struct {
	StatsFn func(context.Context, model.Identity) (*model.DashboardSummary, error)
}

// DashboardStats returns empty counters by default.
func (s DashboardFacadeStub) DashboardStats(ctx context.Context, actor model.Identity) (*model.DashboardSummary, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, actor)
	}
	return &model.DashboardSummary{}, nil
}

// HealthFacadeStub reports configured store health.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// MarketFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketFacadeStub struct {
	AuthFacadeStub
	ProjectFacadeStub
	BidFacadeStub
	PaymentFacadeStub
	DashboardFacadeStub
	HealthFacadeStub
}
