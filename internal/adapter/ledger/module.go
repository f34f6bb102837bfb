package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/gigmarket/internal/config"
)

// Module provides the processed-event ledger selected by configuration.
var Module = fx.Provide(newLedger)

type ledgerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
}

var newDynamoAPI = func(ctx context.Context, cfg config.DynamoDBConfig) (dynamoAPI, error) {
	return NewDynamoClient(ctx, cfg)
}

func newLedger(p ledgerParams) (Ledger, error) {
	cfg := p.Config
	switch cfg.Ledger {
	case config.LedgerRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		p.Logger.Info("event ledger: redis", slog.String("addr", cfg.Redis.Addr))
		return NewRedisLedger(client, cfg.LedgerTTL), nil
	case config.LedgerDynamoDB:
		db, err := newDynamoAPI(p.Ctx, cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		p.Logger.Info("event ledger: dynamodb", slog.String("table", cfg.DynamoDB.Table))
		return NewDynamoLedger(db, cfg.DynamoDB.Table, cfg.LedgerTTL), nil
	case config.LedgerMemory, "":
		return NewMemoryLedger(cfg.LedgerTTL), nil
	default:
		return nil, fmt.Errorf("unsupported event ledger %q", cfg.Ledger)
	}
}
