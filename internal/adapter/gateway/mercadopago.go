package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// Mercado Pago notification headers.
const (
	MercadoPagoSignatureHeader = "X-Signature"
	MercadoPagoRequestIDHeader = "X-Request-Id"
)

const mercadoPagoApproved = "approved"

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentFetcher interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoGateway creates Checkout Pro preferences and resolves payment
// notifications through the Mercado Pago SDK.
type MercadoPagoGateway struct {
	preferences     preferenceCreator
	payments        paymentFetcher
	webhookSecret   string
	notificationURL string
	logger          *slog.Logger
}

// NewMercadoPagoGateway builds the adapter from an access token.
func NewMercadoPagoGateway(accessToken, webhookSecret, notificationURL string, logger *slog.Logger) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		return nil, errors.New("mercado pago access token must be provided")
	}
	if webhookSecret == "" {
		return nil, errors.New("mercado pago webhook secret must be provided")
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago config: %w", err)
	}
	return newMercadoPagoGateway(preference.NewClient(cfg), payment.NewClient(cfg), webhookSecret, notificationURL, logger), nil
}

func newMercadoPagoGateway(prefs preferenceCreator, payments paymentFetcher, webhookSecret, notificationURL string, logger *slog.Logger) *MercadoPagoGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &MercadoPagoGateway{
		preferences:     prefs,
		payments:        payments,
		webhookSecret:   webhookSecret,
		notificationURL: notificationURL,
		logger:          logger,
	}
}

// Name returns the provider identifier.
func (g *MercadoPagoGateway) Name() string { return "mercadopago" }

// CreateCheckout creates a preference referencing the local payment.
func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	metadata := make(map[string]any, 3)
	for k, v := range req.Metadata() {
		metadata[k] = v
	}

	request := preference.Request{
		ExternalReference: req.PaymentID,
		NotificationURL:   g.notificationURL,
		Metadata:          metadata,
		Items: []preference.ItemRequest{
			{
				ID:          req.BidID,
				Title:       req.Title,
				Description: req.Description,
				Quantity:    1,
				UnitPrice:   req.Amount,
				CurrencyID:  strings.ToUpper(req.Currency),
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.CancelURL,
			Pending: req.CancelURL,
		},
	}

	resp, err := g.preferences.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("create mercado pago preference: %w", err)
	}

	g.logger.Debug("mercado pago preference created",
		slog.String("payment_id", req.PaymentID),
		slog.String("preference_id", resp.ID),
	)

	return &CheckoutSession{ID: resp.ID, URL: resp.InitPoint}, nil
}

type mercadoPagoNotification struct {
	Action string `json:"action"`
	Type   string `json:"type"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ParseEvent verifies the x-signature header and loads the referenced payment.
func (g *MercadoPagoGateway) ParseEvent(ctx context.Context, cb Callback) (*model.GatewayEvent, error) {
	var note mercadoPagoNotification
	if len(cb.Body) > 0 {
		if err := json.Unmarshal(cb.Body, &note); err != nil {
			return nil, fmt.Errorf("%w: malformed notification: %v", domainErrors.ErrInvalidSignature, err)
		}
	}

	dataID := cb.Query.Get("data.id")
	if dataID == "" {
		dataID = note.Data.ID
	}
	if err := g.verify(cb, dataID); err != nil {
		return nil, err
	}

	kind := note.Type
	if kind == "" {
		kind = cb.Query.Get("type")
	}
	event := &model.GatewayEvent{Type: kind}
	if kind != "payment" || dataID == "" {
		event.ID = "mercadopago:" + kind + ":" + dataID
		return event, nil
	}

	id, err := strconv.Atoi(dataID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed mercado pago payment id %q", domainErrors.ErrInvalidSignature, dataID)
	}
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch mercado pago payment %d: %w", id, err)
	}

	event.ID = fmt.Sprintf("mercadopago:%d:%s", resp.ID, resp.Status)
	event.Type = "payment." + resp.Status
	if resp.Status == mercadoPagoApproved {
		event.Kind = model.EventCheckoutCompleted
		event.PaymentID = resp.ExternalReference
	}
	return event, nil
}

// verify checks the v1 HMAC of "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
func (g *MercadoPagoGateway) verify(cb Callback, dataID string) error {
	header := cb.Header.Get(MercadoPagoSignatureHeader)
	if header == "" {
		return fmt.Errorf("%w: missing %s header", domainErrors.ErrInvalidSignature, MercadoPagoSignatureHeader)
	}

	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return fmt.Errorf("%w: malformed %s header", domainErrors.ErrInvalidSignature, MercadoPagoSignatureHeader)
	}

	expected := SignMercadoPago(g.webhookSecret, dataID, cb.Header.Get(MercadoPagoRequestIDHeader), ts)
	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return fmt.Errorf("%w: mercado pago signature mismatch", domainErrors.ErrInvalidSignature)
	}
	return nil
}

// SignMercadoPago returns the hex v1 signature Mercado Pago sends for a notification.
func SignMercadoPago(secret, dataID, requestID, ts string) string {
	var manifest strings.Builder
	if dataID != "" {
		manifest.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		manifest.WriteString("request-id:" + requestID + ";")
	}
	manifest.WriteString("ts:" + ts + ";")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest.String()))
	return hex.EncodeToString(mac.Sum(nil))
}
