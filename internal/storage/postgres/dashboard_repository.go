package postgres

import (
	"context"

	"github.com/polkiloo/gigmarket/internal/domain/model"
)

type dashboardRepository struct {
	storage *Storage
}

func (r *dashboardRepository) CustomerSummary(ctx context.Context, customerID string) (*model.DashboardSummary, error) {
	const query = `SELECT
                       (SELECT COUNT(*) FROM projects WHERE customer_id=$1),
                       (SELECT COUNT(*) FROM bids b JOIN projects p ON p.id = b.project_id WHERE p.customer_id=$1)`
	var projects, bids int64
	if err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(&projects, &bids); err != nil {
		return nil, err
	}
	return &model.DashboardSummary{Projects: int(projects), Bids: int(bids)}, nil
}

func (r *dashboardRepository) FreelancerSummary(ctx context.Context, freelancerID string) (*model.DashboardSummary, error) {
	const query = `SELECT
                       (SELECT COUNT(*) FROM bids WHERE freelancer_id=$1),
                       (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE freelancer_id=$1 AND status=$2)`
	var (
		bids     int64
		earnings float64
	)
	if err := r.storage.pool.QueryRow(ctx, query, freelancerID, model.PaymentStatusCompleted).Scan(&bids, &earnings); err != nil {
		return nil, err
	}
	return &model.DashboardSummary{Bids: int(bids), Earnings: earnings}, nil
}
