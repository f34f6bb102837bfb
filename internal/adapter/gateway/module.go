package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/gigmarket/internal/config"
)

// Module exposes the configured checkout provider. With no provider
// configured a nil Gateway is supplied.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (Gateway, error) {
	return New(p.Config, p.Logger)
}

// New selects the adapter named by cfg.Gateway.
func New(cfg *config.Config, logger *slog.Logger) (Gateway, error) {
	switch cfg.Gateway {
	case config.GatewayStripe:
		return NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.WebhookTolerance, nil, logger)
	case config.GatewayMercadoPago:
		return NewMercadoPagoGateway(cfg.MercadoPago.AccessToken, cfg.MercadoPago.WebhookSecret, cfg.MercadoPago.NotificationURL, logger)
	default:
		return nil, nil
	}
}
