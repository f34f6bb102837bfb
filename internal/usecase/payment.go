package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/polkiloo/gigmarket/internal/adapter/gateway"
	"github.com/polkiloo/gigmarket/internal/adapter/ledger"
	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/guard"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
)

const (
	mockSessionPrefix = "mock_"
	successPath       = "/payments/success?payment_id="
)

// PaymentSettings holds checkout presentation options.
type PaymentSettings struct {
	BaseURL  string
	Currency string
}

// PaymentUseCase drives the payment lifecycle: checkout initiation and
// gateway callback reconciliation.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	gateway  gateway.Gateway
	ledger   ledger.Ledger
	settings PaymentSettings
	logger   *slog.Logger
	now      func() time.Time
}

// NewPaymentUseCase constructs PaymentUseCase. gw and led may be nil: without
// a gateway checkouts fall back to mock sessions and callbacks are refused.
func NewPaymentUseCase(payments repository.PaymentRepository, gw gateway.Gateway, led ledger.Ledger, settings PaymentSettings, logger *slog.Logger) *PaymentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentUseCase{
		payments: payments,
		gateway:  gw,
		ledger:   led,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Initiate creates (or reuses) the PENDING payment for an accepted bid and
// returns a checkout session for it.
func (u *PaymentUseCase) Initiate(ctx context.Context, actor model.Identity, projectID, bidID string) (*model.Checkout, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, err
	}
	projectID, err := requireID("projectId", projectID)
	if err != nil {
		return nil, err
	}
	bidID, err = requireID("bidId", bidID)
	if err != nil {
		return nil, err
	}

	var title string
	payment, err := u.payments.Prepare(ctx, projectID, bidID, func(project model.Project, bid model.Bid, existing *model.Payment) (*model.Payment, error) {
		if !guard.CanInitiatePayment(actor, project) {
			return nil, fmt.Errorf("%w: only the project owner can pay", domainErrors.ErrForbidden)
		}
		if bid.ProjectID != project.ID {
			return nil, fmt.Errorf("%w: bid does not belong to project", domainErrors.ErrInvalidState)
		}
		if bid.Status != model.BidStatusAccepted {
			return nil, fmt.Errorf("%w: bid must be accepted before payment", domainErrors.ErrInvalidState)
		}
		title = project.Title
		if existing != nil {
			if existing.Status == model.PaymentStatusCompleted {
				return nil, fmt.Errorf("%w: payment is already completed", domainErrors.ErrInvalidState)
			}
			return existing, nil
		}
		return &model.Payment{
			ProjectID:    project.ID,
			BidID:        bid.ID,
			CustomerID:   project.CustomerID,
			FreelancerID: bid.FreelancerID,
			Amount:       bid.Amount,
			Status:       model.PaymentStatusPending,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if payment.HasCheckout() {
		return storedCheckout(payment), nil
	}

	if u.gateway == nil {
		u.logger.Warn("payment gateway not configured, using mock checkout", slog.String("payment_id", payment.ID))
		return mockCheckout(payment.ID), nil
	}

	session, err := u.gateway.CreateCheckout(ctx, u.checkoutRequest(payment, title))
	if err != nil {
		u.logger.Warn("checkout session failed, using mock checkout",
			slog.String("payment_id", payment.ID),
			slog.String("gateway", u.gateway.Name()),
			slog.Any("error", err),
		)
		return mockCheckout(payment.ID), nil
	}

	stored, err := u.payments.AttachCheckout(ctx, payment.ID, session.ID, session.URL)
	if err != nil {
		return nil, err
	}

	u.logger.Info("payment initiated",
		slog.String("payment_id", stored.ID),
		slog.String("bid_id", stored.BidID),
		slog.String("session_id", stored.ExternalID),
	)

	return storedCheckout(stored), nil
}

func (u *PaymentUseCase) checkoutRequest(p *model.Payment, title string) gateway.CheckoutRequest {
	return gateway.CheckoutRequest{
		PaymentID:   p.ID,
		ProjectID:   p.ProjectID,
		BidID:       p.BidID,
		Title:       title,
		Description: "Payment for project: " + title,
		Amount:      p.Amount,
		Currency:    u.settings.Currency,
		SuccessURL:  u.settings.BaseURL + successPath + url.QueryEscape(p.ID),
		CancelURL:   u.settings.BaseURL + "/projects/" + url.PathEscape(p.ProjectID),
	}
}

func storedCheckout(p *model.Payment) *model.Checkout {
	return &model.Checkout{PaymentID: p.ID, SessionID: p.ExternalID, URL: p.CheckoutURL}
}

func mockCheckout(paymentID string) *model.Checkout {
	return &model.Checkout{
		PaymentID: paymentID,
		SessionID: mockSessionPrefix + paymentID,
		URL:       successPath + url.QueryEscape(paymentID),
		Mock:      true,
	}
}

// Reconcile applies a gateway callback. Repeated and concurrent deliveries
// of the same completion change the payment at most once.
func (u *PaymentUseCase) Reconcile(ctx context.Context, cb gateway.Callback) (model.ReconcileOutcome, error) {
	if u.gateway == nil {
		return "", fmt.Errorf("%w: payment gateway not configured", domainErrors.ErrInvalidSignature)
	}

	event, err := u.gateway.ParseEvent(ctx, cb)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidSignature) {
			return "", err
		}
		return "", fmt.Errorf("parse gateway event: %w", err)
	}

	if event.Kind != model.EventCheckoutCompleted {
		u.logger.Debug("gateway event ignored", slog.String("event_id", event.ID), slog.String("type", event.Type))
		return model.OutcomeIgnored, nil
	}
	if event.PaymentID == "" {
		u.logger.Warn("completed event without payment reference", slog.String("event_id", event.ID))
		return model.OutcomeIgnored, nil
	}

	if u.seen(ctx, event.ID) {
		return model.OutcomeDuplicate, nil
	}

	payment, changed, err := u.payments.Complete(ctx, event.PaymentID, func(p *model.Payment) (bool, error) {
		if p.Status == model.PaymentStatusCompleted {
			return false, nil
		}
		p.Status = model.PaymentStatusCompleted
		if p.ExternalID == "" {
			p.ExternalID = event.SessionID
		}
		completedAt := u.now().UTC()
		p.CompletedAt = &completedAt
		return true, nil
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Warn("callback for unknown payment",
				slog.String("event_id", event.ID),
				slog.String("payment_id", event.PaymentID),
			)
			return model.OutcomeUnknown, nil
		}
		return "", err
	}

	u.mark(ctx, event.ID)

	if !changed {
		return model.OutcomeDuplicate, nil
	}

	u.logger.Info("payment completed",
		slog.String("payment_id", payment.ID),
		slog.String("bid_id", payment.BidID),
		slog.String("event_id", event.ID),
	)
	return model.OutcomeCompleted, nil
}

func (u *PaymentUseCase) seen(ctx context.Context, eventID string) bool {
	if u.ledger == nil || eventID == "" {
		return false
	}
	ok, err := u.ledger.Seen(ctx, eventID)
	if err != nil {
		u.logger.Warn("event ledger lookup failed", slog.String("event_id", eventID), slog.Any("error", err))
		return false
	}
	return ok
}

func (u *PaymentUseCase) mark(ctx context.Context, eventID string) {
	if u.ledger == nil || eventID == "" {
		return
	}
	if err := u.ledger.Mark(ctx, eventID); err != nil {
		u.logger.Warn("event ledger mark failed", slog.String("event_id", eventID), slog.Any("error", err))
	}
}

// Get returns a payment visible to the actor.
func (u *PaymentUseCase) Get(ctx context.Context, actor model.Identity, paymentID string) (*model.Payment, error) {
	if err := requireIdentity(actor); err != nil {
		return nil, err
	}
	paymentID, err := requireID("paymentId", paymentID)
	if err != nil {
		return nil, err
	}

	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !guard.CanViewPayment(actor, *payment) {
		return nil, fmt.Errorf("%w: payment belongs to other users", domainErrors.ErrForbidden)
	}
	return payment, nil
}
