package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/gigmarket/internal/adapter/gateway"
	"github.com/polkiloo/gigmarket/internal/adapter/ledger"
	"github.com/polkiloo/gigmarket/internal/config"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewProjectUseCase,
	NewBidUseCase,
	newPaymentUseCase,
	NewDashboardUseCase,
)

type paymentParams struct {
	fx.In

	Payments repository.PaymentRepository
	Config   *config.Config
	Logger   *slog.Logger
	Gateway  gateway.Gateway `optional:"true"`
	Ledger   ledger.Ledger   `optional:"true"`
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	settings := PaymentSettings{BaseURL: p.Config.PublicBaseURL, Currency: p.Config.Currency}
	return NewPaymentUseCase(p.Payments, p.Gateway, p.Ledger, settings, p.Logger)
}
