package app

import (
	"context"
	"time"

	"github.com/polkiloo/gigmarket/internal/adapter/gateway"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// MarketFacade exposes the lifecycle use cases to the HTTP layer.
type MarketFacade struct {
	auth      *usecase.AuthUseCase
	projects  *usecase.ProjectUseCase
	bids      *usecase.BidUseCase
	payments  *usecase.PaymentUseCase
	dashboard *usecase.DashboardUseCase
	health    HealthChecker
}

func NewMarketFacade(
	auth *usecase.AuthUseCase,
	projects *usecase.ProjectUseCase,
	bids *usecase.BidUseCase,
	payments *usecase.PaymentUseCase,
	dashboard *usecase.DashboardUseCase,
	health HealthChecker,
) *MarketFacade {
	return &MarketFacade{
		auth:      auth,
		projects:  projects,
		bids:      bids,
		payments:  payments,
		dashboard: dashboard,
		health:    health,
	}
}

func (f *MarketFacade) Register(ctx context.Context, email, password, name string, role model.Role) (*model.User, string, error) {
	return f.auth.Register(ctx, usecase.Registration{Email: email, Password: password, Name: name, Role: role})
}

func (f *MarketFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *MarketFacade) ParseToken(token string) (model.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) CreateProject(ctx context.Context, actor model.Identity, title, description string, budget float64, deadline *time.Time) (*model.Project, error) {
	return f.projects.Create(ctx, actor, usecase.ProjectDraft{
		Title:       title,
		Description: description,
		Budget:      budget,
		Deadline:    deadline,
	})
}

func (f *MarketFacade) PublishProject(ctx context.Context, actor model.Identity, projectID string) (*model.Project, error) {
	return f.projects.Publish(ctx, actor, projectID)
}

func (f *MarketFacade) EditProject(ctx context.Context, actor model.Identity, projectID string, patch model.ProjectPatch) (*model.Project, error) {
	return f.projects.Edit(ctx, actor, projectID, patch)
}

func (f *MarketFacade) Project(ctx context.Context, projectID string) (*model.ProjectDetails, error) {
	return f.projects.Get(ctx, projectID)
}

func (f *MarketFacade) Projects(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	return f.projects.List(ctx, filter)
}

func (f *MarketFacade) SubmitBid(ctx context.Context, actor model.Identity, projectID string, amount float64, proposal string) (*model.Bid, error) {
	return f.bids.Submit(ctx, actor, projectID, amount, proposal)
}

// ResolveBid returns the resolved bid; the project side effect is visible
// through Project.
func (f *MarketFacade) ResolveBid(ctx context.Context, actor model.Identity, bidID string, decision model.BidStatus) (*model.Bid, error) {
	bid, _, err := f.bids.Resolve(ctx, actor, bidID, decision)
	return bid, err
}

func (f *MarketFacade) InitiatePayment(ctx context.Context, actor model.Identity, projectID, bidID string) (*model.Checkout, error) {
	return f.payments.Initiate(ctx, actor, projectID, bidID)
}

func (f *MarketFacade) Payment(ctx context.Context, actor model.Identity, paymentID string) (*model.Payment, error) {
	return f.payments.Get(ctx, actor, paymentID)
}

func (f *MarketFacade) ReconcilePayment(ctx context.Context, cb gateway.Callback) (model.ReconcileOutcome, error) {
	return f.payments.Reconcile(ctx, cb)
}

func (f *MarketFacade) DashboardStats(ctx context.Context, actor model.Identity) (*model.DashboardSummary, error) {
	return f.dashboard.Stats(ctx, actor)
}

func (f *MarketFacade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
