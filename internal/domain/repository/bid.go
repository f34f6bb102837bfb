package repository

import (
	"context"

	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// BidAdmission checks a project, held under a share lock, before a bid is
// inserted against it.
type BidAdmission func(project model.Project) error

// BidResolution decides a locked bid. acceptedBidID is the id of the bid
// already ACCEPTED on the project, or empty. It mutates bid and project in
// place; both are written in the same transaction.
type BidResolution func(bid *model.Bid, project *model.Project, acceptedBidID string) error

// BidRepository describes persistence operations with bids.
type BidRepository interface {
	Create(ctx context.Context, bid model.Bid, admit BidAdmission) (*model.Bid, error)
	GetByID(ctx context.Context, id string) (*model.Bid, error)
	Resolve(ctx context.Context, id string, fn BidResolution) (*model.Bid, *model.Project, error)
}
