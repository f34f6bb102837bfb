package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// StripeSignatureHeader carries the webhook signature.
const StripeSignatureHeader = "Stripe-Signature"

const stripeCompletedEvent = "checkout.session.completed"

// StripeGateway creates Stripe Checkout Sessions and verifies Stripe webhooks.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	tolerance     time.Duration
	logger        *slog.Logger
}

// NewStripeGateway builds the adapter. A nil backends value uses Stripe's
// production endpoints.
func NewStripeGateway(secretKey, webhookSecret string, tolerance time.Duration, backends *stripe.Backends, logger *slog.Logger) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key must be provided")
	}
	if webhookSecret == "" {
		return nil, errors.New("stripe webhook secret must be provided")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StripeGateway{
		api:           client.New(secretKey, backends),
		webhookSecret: webhookSecret,
		tolerance:     tolerance,
		logger:        logger,
	}, nil
}

// Name returns the provider identifier.
func (g *StripeGateway) Name() string { return "stripe" }

// CreateCheckout opens a one-item payment session priced in minor units.
func (g *StripeGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.PaymentID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(toMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.Title),
						Description: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata() {
		params.AddMetadata(k, v)
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}

	g.logger.Debug("stripe checkout session created",
		slog.String("payment_id", req.PaymentID),
		slog.String("session_id", session.ID),
	)

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// ParseEvent verifies the Stripe-Signature header and decodes the event.
func (g *StripeGateway) ParseEvent(ctx context.Context, cb Callback) (*model.GatewayEvent, error) {
	signature := cb.Header.Get(StripeSignatureHeader)
	if signature == "" {
		return nil, fmt.Errorf("%w: missing %s header", domainErrors.ErrInvalidSignature, StripeSignatureHeader)
	}

	event, err := webhook.ConstructEventWithOptions(cb.Body, signature, g.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                g.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err)
	}

	result := &model.GatewayEvent{ID: event.ID, Type: string(event.Type)}
	if string(event.Type) != stripeCompletedEvent {
		return result, nil
	}
	if event.Data == nil {
		return nil, fmt.Errorf("%w: stripe event %s has no data", domainErrors.ErrInvalidSignature, event.ID)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: malformed stripe checkout session: %v", domainErrors.ErrInvalidSignature, err)
	}

	result.Kind = model.EventCheckoutCompleted
	result.SessionID = session.ID
	result.PaymentID = session.Metadata[MetadataPaymentID]
	if result.PaymentID == "" {
		result.PaymentID = session.ClientReferenceID
	}
	return result, nil
}
