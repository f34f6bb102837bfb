package repository

import (
	"context"

	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// DashboardRepository aggregates per-user counters.
type DashboardRepository interface {
	CustomerSummary(ctx context.Context, customerID string) (*model.DashboardSummary, error)
	FreelancerSummary(ctx context.Context, freelancerID string) (*model.DashboardSummary, error)
}
