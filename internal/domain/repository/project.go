package repository

import (
	"context"

	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// ProjectMutation edits a locked project in place and reports whether
// anything changed. Returning an error aborts the transaction.
type ProjectMutation func(project *model.Project) (bool, error)

// ProjectRepository describes persistence operations with projects.
type ProjectRepository interface {
	Create(ctx context.Context, project model.Project) (*model.Project, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	GetDetails(ctx context.Context, id string) (*model.ProjectDetails, error)
	List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error)
	// Update runs fn while the project row is locked and persists the
	// result when fn reports a change.
	Update(ctx context.Context, id string, fn ProjectMutation) (*model.Project, error)
}
