package app

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/shop-bot/internal/config"
	"github.com/nguyentranbao-ct/shop-bot/internal/kafka"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/shop-bot/internal/usecase"
)

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	opts := options.Client().
		SetAppName("shop-bot").
		ApplyURI(cfg.Database.URI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("init mongo client: %w", err)
	}

	mongoDB := mongoClient.Database(cfg.Database.Database)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
		OnStop: func(ctx context.Context) error {
			return mongoClient.Disconnect(ctx)
		},
	})

	return &mongodb.DB{
		Client:   mongoClient,
		Database: mongoDB,
	}, nil
}

// EnsureIndexes creates the unique indexes cart and order invariants rely on.
func EnsureIndexes(lc fx.Lifecycle, db *mongodb.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.EnsureIndexes(ctx)
		},
	})
}

// StartSessionJanitor runs the idle-session sweep for the process lifetime.
func StartSessionJanitor(lc fx.Lifecycle, sessions usecase.SessionManager) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go sessions.Run(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sessions.Stop()
			return nil
		},
	})
}

func StopOrderEventPublisher(lc fx.Lifecycle, events kafka.OrderEventPublisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return events.Close()
		},
	})
}
