package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/gigmarket/internal/adapter/gateway"
	"github.com/polkiloo/gigmarket/internal/adapter/ledger"
	"github.com/polkiloo/gigmarket/internal/app"
	"github.com/polkiloo/gigmarket/internal/config"
	"github.com/polkiloo/gigmarket/internal/logger"
	"github.com/polkiloo/gigmarket/internal/pkg/auth"
	"github.com/polkiloo/gigmarket/internal/server/http/router"
	"github.com/polkiloo/gigmarket/internal/storage/postgres"
	"github.com/polkiloo/gigmarket/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		gateway.Module,
		ledger.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
