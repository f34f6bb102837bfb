package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
)

const paymentColumns = `id, project_id, bid_id, customer_id, freelancer_id, amount, status,
                        COALESCE(external_id, ''), COALESCE(checkout_url, ''), created_at, updated_at, completed_at`

type paymentRepository struct {
	storage *Storage
}

func (r *paymentRepository) Prepare(ctx context.Context, projectID, bidID string, fn repository.PaymentPreparation) (*model.Payment, error) {
	const (
		lockProject = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1 FOR SHARE`
		lockBid     = `SELECT ` + bidColumns + ` FROM bids WHERE id=$1 FOR UPDATE`
		lockPayment = `SELECT ` + paymentColumns + ` FROM payments WHERE bid_id=$1 FOR UPDATE`
		insert      = `INSERT INTO payments (id, project_id, bid_id, customer_id, freelancer_id, amount, status)
                       VALUES ($1, $2, $3, $4, $5, $6, $7)
                       RETURNING created_at, updated_at`
	)

	var result *model.Payment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var (
			project model.Project
			bid     model.Bid
		)
		if err := scanProject(tx.QueryRow(ctx, lockProject, projectID), &project); err != nil {
			return mapError(err, "project", projectID)
		}
		if err := scanBid(tx.QueryRow(ctx, lockBid, bidID), &bid); err != nil {
			return mapError(err, "bid", bidID)
		}

		var existing *model.Payment
		var p model.Payment
		switch err := scanPayment(tx.QueryRow(ctx, lockPayment, bidID), &p); {
		case err == nil:
			existing = &p
		case errors.Is(err, pgx.ErrNoRows):
		default:
			return err
		}

		payment, err := fn(project, bid, existing)
		if err != nil {
			return err
		}
		if payment == existing {
			result = existing
			return nil
		}

		if payment.ID == "" {
			payment.ID = newID()
		}
		err = tx.QueryRow(ctx, insert,
			payment.ID, payment.ProjectID, payment.BidID, payment.CustomerID, payment.FreelancerID, payment.Amount, payment.Status,
		).Scan(&payment.CreatedAt, &payment.UpdatedAt)
		if err != nil {
			return mapError(err, "payment", payment.ID)
		}
		result = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) AttachCheckout(ctx context.Context, id, sessionID, url string) (*model.Payment, error) {
	const query = `UPDATE payments SET external_id=$2, checkout_url=$3, updated_at=NOW() WHERE id=$1 AND external_id IS NULL`
	if _, err := r.storage.pool.Exec(ctx, query, id, sessionID, url); err != nil {
		return nil, mapError(err, "payment", id)
	}
	return r.GetByID(ctx, id)
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1`
	var p model.Payment
	if err := scanPayment(r.storage.pool.QueryRow(ctx, query, id), &p); err != nil {
		return nil, mapError(err, "payment", id)
	}
	return &p, nil
}

func (r *paymentRepository) Complete(ctx context.Context, id string, fn repository.PaymentMutation) (*model.Payment, bool, error) {
	const (
		lockPayment = `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1 FOR UPDATE`
		update      = `UPDATE payments
                       SET status=$2, external_id=NULLIF($3, ''), completed_at=$4, updated_at=NOW()
                       WHERE id=$1
                       RETURNING updated_at`
	)

	var (
		payment model.Payment
		changed bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := scanPayment(tx.QueryRow(ctx, lockPayment, id), &payment); err != nil {
			return mapError(err, "payment", id)
		}
		var err error
		changed, err = fn(&payment)
		if err != nil || !changed {
			return err
		}
		err = tx.QueryRow(ctx, update, payment.ID, payment.Status, payment.ExternalID, payment.CompletedAt).Scan(&payment.UpdatedAt)
		return mapError(err, "payment", payment.ID)
	})
	if err != nil {
		return nil, false, err
	}
	return &payment, changed, nil
}

func scanPayment(row pgx.Row, p *model.Payment) error {
	return row.Scan(&p.ID, &p.ProjectID, &p.BidID, &p.CustomerID, &p.FreelancerID, &p.Amount, &p.Status,
		&p.ExternalID, &p.CheckoutURL, &p.CreatedAt, &p.UpdatedAt, &p.CompletedAt)
}
