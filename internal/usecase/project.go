package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/guard"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
)

const (
	featuredLimit    = 6
	defaultListLimit = 100
)

// ProjectUseCase encapsulates project lifecycle logic.
type ProjectUseCase struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// NewProjectUseCase constructs ProjectUseCase.
func NewProjectUseCase(projects repository.ProjectRepository, logger *slog.Logger) *ProjectUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectUseCase{projects: projects, logger: logger}
}

// ProjectDraft carries fields of a new project.
type ProjectDraft struct {
	Title       string
	Description string
	Budget      float64
	Deadline    *time.Time
}

// Create stores a DRAFT project owned by actor.
func (u *ProjectUseCase) Create(ctx context.Context, actor model.Identity, draft ProjectDraft) (*model.Project, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, err
	}
	if !guard.CanCreateProject(actor) {
		return nil, fmt.Errorf("%w: only customers can create projects", domainErrors.ErrForbidden)
	}

	title, err := requireText("title", draft.Title, maxTitleLength)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", draft.Description, maxTextLength)
	if err != nil {
		return nil, err
	}
	if err := requireAmount("budget", draft.Budget); err != nil {
		return nil, err
	}

	return u.projects.Create(ctx, model.Project{
		CustomerID:  actor.UserID,
		Title:       title,
		Description: description,
		Budget:      draft.Budget,
		Deadline:    draft.Deadline,
		Status:      model.ProjectStatusDraft,
	})
}

// Publish moves an owned DRAFT project to OPEN.
func (u *ProjectUseCase) Publish(ctx context.Context, actor model.Identity, projectID string) (*model.Project, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, err
	}
	projectID, err := requireID("projectId", projectID)
	if err != nil {
		return nil, err
	}

	project, err := u.projects.Update(ctx, projectID, func(p *model.Project) (bool, error) {
		if !guard.CanPublishProject(actor, *p) {
			return false, fmt.Errorf("%w: only the owner can publish a project", domainErrors.ErrForbidden)
		}
		if p.Status != model.ProjectStatusDraft || !p.Status.CanTransitionTo(model.ProjectStatusOpen) {
			return false, fmt.Errorf("%w: project is %s, only DRAFT projects can be published", domainErrors.ErrInvalidState, p.Status)
		}
		p.Status = model.ProjectStatusOpen
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("project published", slog.String("project_id", project.ID), slog.String("customer_id", project.CustomerID))
	return project, nil
}

// Edit changes project metadata. Status is never touched here.
func (u *ProjectUseCase) Edit(ctx context.Context, actor model.Identity, projectID string, patch model.ProjectPatch) (*model.Project, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, err
	}
	projectID, err := requireID("projectId", projectID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", domainErrors.ErrValidation)
	}
	if patch.Title != nil {
		title, err := requireText("title", *patch.Title, maxTitleLength)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		description, err := requireText("description", *patch.Description, maxTextLength)
		if err != nil {
			return nil, err
		}
		patch.Description = &description
	}
	if patch.Budget != nil {
		if err := requireAmount("budget", *patch.Budget); err != nil {
			return nil, err
		}
	}

	return u.projects.Update(ctx, projectID, func(p *model.Project) (bool, error) {
		if !guard.CanMutateProject(actor, *p) {
			return false, fmt.Errorf("%w: only the owner can edit a project", domainErrors.ErrForbidden)
		}
		if patch.Featured != nil && !guard.CanCurateProject(actor) {
			return false, fmt.Errorf("%w: only admins can feature projects", domainErrors.ErrForbidden)
		}
		return applyPatch(p, patch), nil
	})
}

func applyPatch(p *model.Project, patch model.ProjectPatch) bool {
	changed := false
	if patch.Title != nil && *patch.Title != p.Title {
		p.Title = *patch.Title
		changed = true
	}
	if patch.Description != nil && *patch.Description != p.Description {
		p.Description = *patch.Description
		changed = true
	}
	if patch.Budget != nil && *patch.Budget != p.Budget {
		p.Budget = *patch.Budget
		changed = true
	}
	if patch.Deadline != nil && (p.Deadline == nil || !patch.Deadline.Equal(*p.Deadline)) {
		deadline := *patch.Deadline
		p.Deadline = &deadline
		changed = true
	}
	if patch.Featured != nil && *patch.Featured != p.Featured {
		p.Featured = *patch.Featured
		changed = true
	}
	return changed
}

// Get returns the project with its bids.
func (u *ProjectUseCase) Get(ctx context.Context, projectID string) (*model.ProjectDetails, error) {
	projectID, err := requireID("projectId", projectID)
	if err != nil {
		return nil, err
	}
	return u.projects.GetDetails(ctx, projectID)
}

// List returns projects newest first. Featured listings show open projects only.
func (u *ProjectUseCase) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, filter.Status)
	}
	if filter.Featured {
		filter.Status = model.ProjectStatusOpen
		filter.Limit = featuredLimit
	}
	if filter.Limit <= 0 || filter.Limit > defaultListLimit {
		filter.Limit = defaultListLimit
	}
	return u.projects.List(ctx, filter)
}
