package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
)

const bidColumns = `id, project_id, freelancer_id, amount, proposal, status, created_at, updated_at`

type bidRepository struct {
	storage *Storage
}

func (r *bidRepository) Create(ctx context.Context, bid model.Bid, admit repository.BidAdmission) (*model.Bid, error) {
	const (
		lockProject = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1 FOR SHARE`
		insertBid   = `INSERT INTO bids (id, project_id, freelancer_id, amount, proposal, status)
                       VALUES ($1, $2, $3, $4, $5, $6)
                       RETURNING created_at, updated_at`
	)
	if bid.ID == "" {
		bid.ID = newID()
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var project model.Project
		if err := scanProject(tx.QueryRow(ctx, lockProject, bid.ProjectID), &project); err != nil {
			return mapError(err, "project", bid.ProjectID)
		}
		if err := admit(project); err != nil {
			return err
		}
		err := tx.QueryRow(ctx, insertBid, bid.ID, bid.ProjectID, bid.FreelancerID, bid.Amount, bid.Proposal, bid.Status).
			Scan(&bid.CreatedAt, &bid.UpdatedAt)
		return mapError(err, "bid", bid.ID)
	})
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *bidRepository) GetByID(ctx context.Context, id string) (*model.Bid, error) {
	const query = `SELECT ` + bidColumns + ` FROM bids WHERE id=$1`
	var b model.Bid
	if err := scanBid(r.storage.pool.QueryRow(ctx, query, id), &b); err != nil {
		return nil, mapError(err, "bid", id)
	}
	return &b, nil
}

// Resolve locks the project row before the bid row, matching Prepare.
func (r *bidRepository) Resolve(ctx context.Context, id string, fn repository.BidResolution) (*model.Bid, *model.Project, error) {
	const (
		bidProject  = `SELECT project_id FROM bids WHERE id=$1`
		lockProject = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1 FOR UPDATE`
		lockBid     = `SELECT ` + bidColumns + ` FROM bids WHERE id=$1 FOR UPDATE`
		acceptedBid = `SELECT id FROM bids WHERE project_id=$1 AND status=$2 LIMIT 1`
		updateBid   = `UPDATE bids SET status=$2, updated_at=NOW() WHERE id=$1 RETURNING updated_at`
	)

	var (
		bid     model.Bid
		project model.Project
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var projectID string
		if err := tx.QueryRow(ctx, bidProject, id).Scan(&projectID); err != nil {
			return mapError(err, "bid", id)
		}
		if err := scanProject(tx.QueryRow(ctx, lockProject, projectID), &project); err != nil {
			return mapError(err, "project", projectID)
		}
		if err := scanBid(tx.QueryRow(ctx, lockBid, id), &bid); err != nil {
			return mapError(err, "bid", id)
		}

		var acceptedID string
		err := tx.QueryRow(ctx, acceptedBid, project.ID, model.BidStatusAccepted).Scan(&acceptedID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		bidBefore, projectBefore := bid.Status, project.Status
		if err := fn(&bid, &project, acceptedID); err != nil {
			return err
		}

		if bid.Status != bidBefore {
			if err := tx.QueryRow(ctx, updateBid, bid.ID, bid.Status).Scan(&bid.UpdatedAt); err != nil {
				return mapError(err, "bid", bid.ID)
			}
		}
		if project.Status != projectBefore {
			return r.storage.writeProject(ctx, tx, &project)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &bid, &project, nil
}

func scanBid(row pgx.Row, b *model.Bid) error {
	return row.Scan(&b.ID, &b.ProjectID, &b.FreelancerID, &b.Amount, &b.Proposal, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}
