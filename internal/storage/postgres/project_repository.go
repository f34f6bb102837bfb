package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
)

const projectColumns = `id, customer_id, title, description, budget, deadline, status, featured, created_at, updated_at`

type projectRepository struct {
	storage *Storage
}

func (r *projectRepository) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	const query = `INSERT INTO projects (id, customer_id, title, description, budget, deadline, status, featured)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING created_at, updated_at`
	if project.ID == "" {
		project.ID = newID()
	}
	err := r.storage.pool.QueryRow(ctx, query,
		project.ID, project.CustomerID, project.Title, project.Description,
		project.Budget, project.Deadline, project.Status, project.Featured,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "project", project.ID)
	}
	return &project, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1`
	var p model.Project
	if err := scanProject(r.storage.pool.QueryRow(ctx, query, id), &p); err != nil {
		return nil, mapError(err, "project", id)
	}
	return &p, nil
}

func (r *projectRepository) GetDetails(ctx context.Context, id string) (*model.ProjectDetails, error) {
	const (
		selectProject = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1`
		selectBids    = `SELECT ` + bidColumns + ` FROM bids WHERE project_id=$1 ORDER BY created_at DESC`
	)

	details := &model.ProjectDetails{}
	err := r.storage.withinTransaction(ctx, snapshotRead, func(tx pgx.Tx) error {
		if err := scanProject(tx.QueryRow(ctx, selectProject, id), &details.Project); err != nil {
			return mapError(err, "project", id)
		}

		rows, err := tx.Query(ctx, selectBids, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var b model.Bid
			if err := scanBid(rows, &b); err != nil {
				return err
			}
			details.Bids = append(details.Bids, b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *projectRepository) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	var (
		query strings.Builder
		where []string
		args  []any
	)
	query.WriteString(`SELECT ` + projectColumns + ` FROM projects`)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Featured {
		where = append(where, "featured")
	}
	if len(where) > 0 {
		query.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := r.storage.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Project
	for rows.Next() {
		var p model.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *projectRepository) Update(ctx context.Context, id string, fn repository.ProjectMutation) (*model.Project, error) {
	const selectQuery = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1 FOR UPDATE`

	var project model.Project
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := scanProject(tx.QueryRow(ctx, selectQuery, id), &project); err != nil {
			return mapError(err, "project", id)
		}
		changed, err := fn(&project)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return r.storage.writeProject(ctx, tx, &project)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Storage) writeProject(ctx context.Context, tx pgx.Tx, p *model.Project) error {
	const updateQuery = `UPDATE projects
                         SET title=$2, description=$3, budget=$4, deadline=$5, status=$6, featured=$7, updated_at=NOW()
                         WHERE id=$1
                         RETURNING updated_at`
	err := tx.QueryRow(ctx, updateQuery, p.ID, p.Title, p.Description, p.Budget, p.Deadline, p.Status, p.Featured).Scan(&p.UpdatedAt)
	return mapError(err, "project", p.ID)
}

func scanProject(row pgx.Row, p *model.Project) error {
	return row.Scan(&p.ID, &p.CustomerID, &p.Title, &p.Description, &p.Budget, &p.Deadline, &p.Status, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
}
