package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	testhelpers "github.com/polkiloo/gigmarket/internal/test"
)

func seedBid(store *testhelpers.MemoryStore, projectID string, bidder model.Identity, amount float64) model.Bid {
	return store.SeedBid(model.Bid{
		ProjectID:    projectID,
		FreelancerID: bidder.UserID,
		Amount:       amount,
		Proposal:     "I can do it",
		Status:       model.BidStatusPending,
	})
}

func TestBidUseCaseSubmit(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewBidUseCase(store.Bids(), nil)
	open := seedProject(store, model.ProjectStatusOpen)

	bid, err := uc.Submit(context.Background(), freelancer, open.ID, 450, " Two weeks ")
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if bid.Status != model.BidStatusPending || bid.FreelancerID != freelancer.UserID || bid.Proposal != "Two weeks" {
		t.Fatalf("unexpected bid %+v", bid)
	}
	if _, ok := store.Bid(bid.ID); !ok {
		t.Fatal("bid not stored")
	}
}

func TestBidUseCaseSubmitRejects(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewBidUseCase(store.Bids(), nil)
	open := seedProject(store, model.ProjectStatusOpen)
	draft := seedProject(store, model.ProjectStatusDraft)
	running := seedProject(store, model.ProjectStatusInProgress)

	cases := []struct {
		name      string
		actor     model.Identity
		projectID string
		amount    float64
		proposal  string
		want      error
	}{
		{"anonymous", model.Identity{}, open.ID, 100, "p", domainErrors.ErrUnauthenticated},
		{"customer", customer, open.ID, 100, "p", domainErrors.ErrForbidden},
		{"admin", admin, open.ID, 100, "p", domainErrors.ErrForbidden},
		{"zero amount", freelancer, open.ID, 0, "p", domainErrors.ErrValidation},
		{"empty proposal", freelancer, open.ID, 100, " ", domainErrors.ErrValidation},
		{"missing project", freelancer, "missing", 100, "p", domainErrors.ErrNotFound},
		{"draft project", freelancer, draft.ID, 100, "p", domainErrors.ErrInvalidState},
		{"project in progress", freelancer, running.ID, 100, "p", domainErrors.ErrInvalidState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Submit(context.Background(), tc.actor, tc.projectID, tc.amount, tc.proposal); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// a forbidden caller with invalid input still gets Forbidden
	if _, err := uc.Submit(context.Background(), customer, open.ID, -1, ""); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden before validation, got %v", err)
	}
}

func TestBidUseCaseAcceptLeavesSiblingsPending(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewBidUseCase(store.Bids(), nil)
	open := seedProject(store, model.ProjectStatusOpen)
	winner := seedBid(store, open.ID, freelancer, 400)
	sibling := seedBid(store, open.ID, rival, 380)

	bid, project, err := uc.Resolve(context.Background(), customer, winner.ID, model.BidStatusAccepted)
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if bid.Status != model.BidStatusAccepted {
		t.Fatalf("expected ACCEPTED, got %s", bid.Status)
	}
	if project.Status != model.ProjectStatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", project.Status)
	}
	stored, _ := store.Project(open.ID)
	if stored.Status != model.ProjectStatusInProgress {
		t.Fatalf("project status not persisted: %s", stored.Status)
	}
	other, _ := store.Bid(sibling.ID)
	if other.Status != model.BidStatusPending {
		t.Fatalf("sibling bid must stay PENDING, got %s", other.Status)
	}

	if _, _, err := uc.Resolve(context.Background(), customer, sibling.ID, model.BidStatusAccepted); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected second accept to fail with invalid state, got %v", err)
	}
	other, _ = store.Bid(sibling.ID)
	if other.Status != model.BidStatusPending {
		t.Fatalf("failed accept changed sibling to %s", other.Status)
	}

	rejected, project, err := uc.Resolve(context.Background(), customer, sibling.ID, model.BidStatusRejected)
	if err != nil {
		t.Fatalf("rejecting sibling returned error: %v", err)
	}
	if rejected.Status != model.BidStatusRejected || project.Status != model.ProjectStatusInProgress {
		t.Fatalf("unexpected reject result %s / %s", rejected.Status, project.Status)
	}
}

func TestBidUseCaseReject(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewBidUseCase(store.Bids(), nil)
	open := seedProject(store, model.ProjectStatusOpen)
	bid := seedBid(store, open.ID, freelancer, 400)

	resolved, project, err := uc.Resolve(context.Background(), admin, bid.ID, model.BidStatusRejected)
	if err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}
	if resolved.Status != model.BidStatusRejected || project.Status != model.ProjectStatusOpen {
		t.Fatalf("unexpected result %s / %s", resolved.Status, project.Status)
	}

	if _, _, err := uc.Resolve(context.Background(), customer, bid.ID, model.BidStatusAccepted); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected resolved bid to be terminal, got %v", err)
	}
}

func TestBidUseCaseResolveRejects(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewBidUseCase(store.Bids(), nil)
	open := seedProject(store, model.ProjectStatusOpen)
	bid := seedBid(store, open.ID, freelancer, 400)
	draft := seedProject(store, model.ProjectStatusDraft)
	draftBid := seedBid(store, draft.ID, freelancer, 100)

	cases := []struct {
		name     string
		actor    model.Identity
		bidID    string
		decision model.BidStatus
		want     error
	}{
		{"anonymous", model.Identity{}, bid.ID, model.BidStatusAccepted, domainErrors.ErrUnauthenticated},
		{"pending decision", customer, bid.ID, model.BidStatusPending, domainErrors.ErrValidation},
		{"unknown decision", customer, bid.ID, "MAYBE", domainErrors.ErrValidation},
		{"missing bid", customer, "missing", model.BidStatusAccepted, domainErrors.ErrNotFound},
		{"other customer", otherCustomer, bid.ID, model.BidStatusAccepted, domainErrors.ErrForbidden},
		{"bidder", freelancer, bid.ID, model.BidStatusAccepted, domainErrors.ErrForbidden},
		{"project not open", customer, draftBid.ID, model.BidStatusAccepted, domainErrors.ErrInvalidState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := uc.Resolve(context.Background(), tc.actor, tc.bidID, tc.decision); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	stored, _ := store.Bid(bid.ID)
	if stored.Status != model.BidStatusPending {
		t.Fatalf("rejected calls changed bid to %s", stored.Status)
	}
}

func TestBidUseCaseConcurrentAccept(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := NewBidUseCase(store.Bids(), nil)
	open := seedProject(store, model.ProjectStatusOpen)
	bids := []model.Bid{
		seedBid(store, open.ID, freelancer, 400),
		seedBid(store, open.ID, rival, 390),
		seedBid(store, open.ID, freelancer, 380),
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for _, b := range bids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _, err := uc.Resolve(context.Background(), customer, id, model.BidStatusAccepted)
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			if !errors.Is(err, domainErrors.ErrInvalidState) {
				t.Errorf("unexpected error %v", err)
			}
		}(b.ID)
	}
	wg.Wait()

	if success != 1 {
		t.Fatalf("expected exactly one accepted bid, got %d", success)
	}
	accepted := 0
	for _, b := range bids {
		stored, _ := store.Bid(b.ID)
		if stored.Status == model.BidStatusAccepted {
			accepted++
		}
	}
	if accepted != 1 {
		t.Fatalf("expected one ACCEPTED bid in store, got %d", accepted)
	}
}
