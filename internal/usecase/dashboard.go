package usecase

import (
	"context"

	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
)

// DashboardUseCase reports per-role counters.
type DashboardUseCase struct {
	dashboard repository.DashboardRepository
}

// NewDashboardUseCase constructs DashboardUseCase.
func NewDashboardUseCase(dashboard repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboard: dashboard}
}

// Stats returns the caller's dashboard.
func (u *DashboardUseCase) Stats(ctx context.Context, actor model.Identity) (*model.DashboardSummary, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, err
	}

	switch actor.Role {
	case model.RoleCustomer:
		return u.dashboard.CustomerSummary(ctx, actor.UserID)
	case model.RoleFreelancer:
		return u.dashboard.FreelancerSummary(ctx, actor.UserID)
	case model.RoleAdmin, model.RoleUnknown:
		return &model.DashboardSummary{}, nil
	}
	return &model.DashboardSummary{}, nil
}
