package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	testhelpers "github.com/polkiloo/gigmarket/internal/test"
)

var (
	customer      = model.Identity{UserID: "customer-1", Role: model.RoleCustomer}
	otherCustomer = model.Identity{UserID: "customer-2", Role: model.RoleCustomer}
	freelancer    = model.Identity{UserID: "freelancer-1", Role: model.RoleFreelancer}
	rival         = model.Identity{UserID: "freelancer-2", Role: model.RoleFreelancer}
	admin         = model.Identity{UserID: "admin-1", Role: model.RoleAdmin}
)

func ptr[T any](v T) *T { return &v }

func seedProject(store *testhelpers.MemoryStore, status model.ProjectStatus) model.Project {
	return store.SeedProject(model.Project{
		CustomerID:  customer.UserID,
		Title:       "Landing page",
		Description: "Build a landing page",
		Budget:      500,
		Status:      status,
	})
}

func TestProjectUseCaseCreate(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewProjectUseCase(store.Projects(), nil)
	deadline := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	project, err := uc.Create(context.Background(), customer, ProjectDraft{
		Title:       "  Logo ",
		Description: "Design a logo",
		Budget:      250,
		Deadline:    &deadline,
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if project.Status != model.ProjectStatusDraft {
		t.Fatalf("expected DRAFT, got %s", project.Status)
	}
	if project.CustomerID != customer.UserID || project.Title != "Logo" {
		t.Fatalf("unexpected project %+v", project)
	}
	if project.Deadline == nil || !project.Deadline.Equal(deadline) {
		t.Fatalf("deadline not stored: %v", project.Deadline)
	}
}

func TestProjectUseCaseCreateRejects(t *testing.T) {
	valid := ProjectDraft{Title: "Logo", Description: "Design", Budget: 100}
	cases := []struct {
		name  string
		actor model.Identity
		draft ProjectDraft
		want  error
	}{
		{"anonymous", model.Identity{}, valid, domainErrors.ErrUnauthenticated},
		{"freelancer", freelancer, valid, domainErrors.ErrForbidden},
		{"empty title", customer, ProjectDraft{Description: "Design", Budget: 100}, domainErrors.ErrValidation},
		{"empty description", customer, ProjectDraft{Title: "Logo", Budget: 100}, domainErrors.ErrValidation},
		{"zero budget", customer, ProjectDraft{Title: "Logo", Description: "Design"}, domainErrors.ErrValidation},
		{"negative budget", customer, ProjectDraft{Title: "Logo", Description: "Design", Budget: -5}, domainErrors.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewProjectUseCase(testhelpers.NewMemoryStore().Projects(), nil)
			if _, err := uc.Create(context.Background(), tc.actor, tc.draft); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestProjectUseCaseCreateByAdmin(t *testing.T) {
	uc := NewProjectUseCase(testhelpers.NewMemoryStore().Projects(), nil)
	if _, err := uc.Create(context.Background(), admin, ProjectDraft{Title: "Logo", Description: "Design", Budget: 100}); err != nil {
		t.Fatalf("admin create returned error: %v", err)
	}
}

func TestProjectUseCasePublish(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewProjectUseCase(store.Projects(), nil)
	draft := seedProject(store, model.ProjectStatusDraft)

	project, err := uc.Publish(context.Background(), customer, draft.ID)
	if err != nil {
		t.Fatalf("publish returned error: %v", err)
	}
	if project.Status != model.ProjectStatusOpen {
		t.Fatalf("expected OPEN, got %s", project.Status)
	}
	stored, _ := store.Project(draft.ID)
	if stored.Status != model.ProjectStatusOpen {
		t.Fatalf("status not persisted: %s", stored.Status)
	}

	if _, err := uc.Publish(context.Background(), customer, draft.ID); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state on second publish, got %v", err)
	}
}

func TestProjectUseCasePublishRejects(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewProjectUseCase(store.Projects(), nil)
	draft := seedProject(store, model.ProjectStatusDraft)
	running := seedProject(store, model.ProjectStatusInProgress)

	cases := []struct {
		name      string
		actor     model.Identity
		projectID string
		want      error
	}{
		{"anonymous", model.Identity{}, draft.ID, domainErrors.ErrUnauthenticated},
		{"empty id", customer, " ", domainErrors.ErrValidation},
		{"missing project", customer, "missing", domainErrors.ErrNotFound},
		{"other customer", otherCustomer, draft.ID, domainErrors.ErrForbidden},
		{"freelancer", freelancer, draft.ID, domainErrors.ErrForbidden},
		{"admin", admin, draft.ID, domainErrors.ErrForbidden},
		{"not draft", customer, running.ID, domainErrors.ErrInvalidState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Publish(context.Background(), tc.actor, tc.projectID); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	stored, _ := store.Project(draft.ID)
	if stored.Status != model.ProjectStatusDraft {
		t.Fatalf("rejected publish changed status to %s", stored.Status)
	}
}

func TestProjectUseCaseEdit(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewProjectUseCase(store.Projects(), nil)
	open := seedProject(store, model.ProjectStatusOpen)
	deadline := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	project, err := uc.Edit(context.Background(), customer, open.ID, model.ProjectPatch{
		Title:    ptr(" Landing page v2 "),
		Budget:   ptr(750.0),
		Deadline: &deadline,
	})
	if err != nil {
		t.Fatalf("edit returned error: %v", err)
	}
	if project.Title != "Landing page v2" || project.Budget != 750 {
		t.Fatalf("patch not applied: %+v", project)
	}
	if project.Status != model.ProjectStatusOpen {
		t.Fatalf("edit must not touch status, got %s", project.Status)
	}
	stored, _ := store.Project(open.ID)
	if stored.Deadline == nil || !stored.Deadline.Equal(deadline) {
		t.Fatalf("deadline not persisted: %v", stored.Deadline)
	}
	if !stored.UpdatedAt.After(open.UpdatedAt) {
		t.Fatal("expected updated timestamp to advance")
	}
}

func TestProjectUseCaseEditFeatured(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewProjectUseCase(store.Projects(), nil)
	open := seedProject(store, model.ProjectStatusOpen)

	if _, err := uc.Edit(context.Background(), customer, open.ID, model.ProjectPatch{Featured: ptr(true)}); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected owner to be forbidden from featuring, got %v", err)
	}

	project, err := uc.Edit(context.Background(), admin, open.ID, model.ProjectPatch{Featured: ptr(true)})
	if err != nil {
		t.Fatalf("admin edit returned error: %v", err)
	}
	if !project.Featured {
		t.Fatal("expected project to be featured")
	}
}

func TestProjectUseCaseEditRejects(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewProjectUseCase(store.Projects(), nil)
	open := seedProject(store, model.ProjectStatusOpen)

	cases := []struct {
		name  string
		actor model.Identity
		id    string
		patch model.ProjectPatch
		want  error
	}{
		{"anonymous", model.Identity{}, open.ID, model.ProjectPatch{Title: ptr("x")}, domainErrors.ErrUnauthenticated},
		{"empty patch", customer, open.ID, model.ProjectPatch{}, domainErrors.ErrValidation},
		{"blank title", customer, open.ID, model.ProjectPatch{Title: ptr(" ")}, domainErrors.ErrValidation},
		{"blank description", customer, open.ID, model.ProjectPatch{Description: ptr("")}, domainErrors.ErrValidation},
		{"zero budget", customer, open.ID, model.ProjectPatch{Budget: ptr(0.0)}, domainErrors.ErrValidation},
		{"missing", customer, "missing", model.ProjectPatch{Title: ptr("x")}, domainErrors.ErrNotFound},
		{"other customer", otherCustomer, open.ID, model.ProjectPatch{Title: ptr("x")}, domainErrors.ErrForbidden},
		{"freelancer", freelancer, open.ID, model.ProjectPatch{Title: ptr("x")}, domainErrors.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Edit(context.Background(), tc.actor, tc.id, tc.patch); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestProjectUseCaseEditNoChange(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewProjectUseCase(store.Projects(), nil)
	open := seedProject(store, model.ProjectStatusOpen)

	project, err := uc.Edit(context.Background(), customer, open.ID, model.ProjectPatch{Title: ptr(open.Title)})
	if err != nil {
		t.Fatalf("edit returned error: %v", err)
	}
	if !project.UpdatedAt.Equal(open.UpdatedAt) {
		t.Fatal("unchanged patch must not bump updated timestamp")
	}
}

func TestProjectUseCaseGet(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewProjectUseCase(store.Projects(), nil)
	open := seedProject(store, model.ProjectStatusOpen)
	older := store.SeedBid(model.Bid{ProjectID: open.ID, FreelancerID: freelancer.UserID, Amount: 400, Proposal: "a", Status: model.BidStatusPending})
	newer := store.SeedBid(model.Bid{ProjectID: open.ID, FreelancerID: rival.UserID, Amount: 450, Proposal: "b", Status: model.BidStatusPending})

	details, err := uc.Get(context.Background(), open.ID)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if len(details.Bids) != 2 || details.Bids[0].ID != newer.ID || details.Bids[1].ID != older.ID {
		t.Fatalf("expected bids newest first, got %+v", details.Bids)
	}

	if _, err := uc.Get(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.Get(context.Background(), ""); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProjectUseCaseList(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewProjectUseCase(store.Projects(), nil)
	seedProject(store, model.ProjectStatusDraft)
	for i := 0; i < 8; i++ {
		p := seedProject(store, model.ProjectStatusOpen)
		if i%4 != 0 {
			store.SeedProject(model.Project{ID: p.ID, CustomerID: p.CustomerID, Title: p.Title, Status: p.Status, Featured: true, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt})
		}
	}
	store.SeedProject(model.Project{CustomerID: customer.UserID, Title: "Draft featured", Status: model.ProjectStatusDraft, Featured: true})

	all, err := uc.List(context.Background(), model.ProjectFilter{})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("expected 10 projects, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatal("expected newest first ordering")
		}
	}

	open, err := uc.List(context.Background(), model.ProjectFilter{Status: model.ProjectStatusOpen})
	if err != nil || len(open) != 8 {
		t.Fatalf("expected 8 open projects, got %d (%v)", len(open), err)
	}

	featured, err := uc.List(context.Background(), model.ProjectFilter{Featured: true})
	if err != nil {
		t.Fatalf("featured list returned error: %v", err)
	}
	if len(featured) != featuredLimit {
		t.Fatalf("expected %d featured projects, got %d", featuredLimit, len(featured))
	}
	for _, p := range featured {
		if !p.Featured || p.Status != model.ProjectStatusOpen {
			t.Fatalf("unexpected featured entry %+v", p)
		}
	}

	if _, err := uc.List(context.Background(), model.ProjectFilter{Status: "ARCHIVED"}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
