package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/guard"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
)

// BidUseCase encapsulates bidding and bid resolution.
type BidUseCase struct {
	bids   repository.BidRepository
	logger *slog.Logger
}

// NewBidUseCase constructs BidUseCase.
func NewBidUseCase(bids repository.BidRepository, logger *slog.Logger) *BidUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BidUseCase{bids: bids, logger: logger}
}

// Submit places a PENDING bid from a freelancer on an OPEN project.
func (u *BidUseCase) Submit(ctx context.Context, actor model.Identity, projectID string, amount float64, proposal string) (*model.Bid, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, err
	}
	if !guard.CanCreateBid(actor) {
		return nil, fmt.Errorf("%w: only freelancers can bid", domainErrors.ErrForbidden)
	}
	projectID, err := requireID("projectId", projectID)
	if err != nil {
		return nil, err
	}
	if err := requireAmount("amount", amount); err != nil {
		return nil, err
	}
	proposal, err = requireText("proposal", proposal, maxTextLength)
	if err != nil {
		return nil, err
	}

	bid := model.Bid{
		ProjectID:    projectID,
		FreelancerID: actor.UserID,
		Amount:       amount,
		Proposal:     proposal,
		Status:       model.BidStatusPending,
	}

	return u.bids.Create(ctx, bid, func(project model.Project) error {
		if project.Status != model.ProjectStatusOpen {
			return fmt.Errorf("%w: project is %s, bids are accepted on OPEN projects only", domainErrors.ErrInvalidState, project.Status)
		}
		return nil
	})
}

// Resolve accepts or rejects a PENDING bid. Accepting moves the project to
// IN_PROGRESS; sibling bids are left as they are.
func (u *BidUseCase) Resolve(ctx context.Context, actor model.Identity, bidID string, decision model.BidStatus) (*model.Bid, *model.Project, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, nil, err
	}
	bidID, err := requireID("bidId", bidID)
	if err != nil {
		return nil, nil, err
	}
	if decision != model.BidStatusAccepted && decision != model.BidStatusRejected {
		return nil, nil, fmt.Errorf("%w: status must be ACCEPTED or REJECTED", domainErrors.ErrValidation)
	}

	bid, project, err := u.bids.Resolve(ctx, bidID, func(b *model.Bid, p *model.Project, acceptedBidID string) error {
		if !guard.CanResolveBid(actor, *b, *p) {
			return fmt.Errorf("%w: only the project owner can resolve bids", domainErrors.ErrForbidden)
		}
		if !b.Status.CanTransitionTo(decision) {
			return fmt.Errorf("%w: bid is already %s", domainErrors.ErrInvalidState, b.Status)
		}
		if decision == model.BidStatusAccepted {
			if acceptedBidID != "" {
				return fmt.Errorf("%w: project already has an accepted bid", domainErrors.ErrInvalidState)
			}
			if p.Status != model.ProjectStatusOpen || !p.Status.CanTransitionTo(model.ProjectStatusInProgress) {
				return fmt.Errorf("%w: project is %s, bids can be accepted on OPEN projects only", domainErrors.ErrInvalidState, p.Status)
			}
			p.Status = model.ProjectStatusInProgress
		}
		b.Status = decision
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	u.logger.Info("bid resolved",
		slog.String("bid_id", bid.ID),
		slog.String("project_id", project.ID),
		slog.String("status", string(bid.Status)),
	)

	return bid, project, nil
}
