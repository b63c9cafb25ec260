package app

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/wager-bot/app/modules/wager"
	wagerhttp "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/http"
	"github.com/Black-And-White-Club/wager-bot/config"
	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
	"github.com/Black-And-White-Club/wager-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/wager-bot/pkg/jwt"
	"github.com/Black-And-White-Club/wager-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// App owns the process-wide infrastructure and the wager module.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	HTTPRouter    chi.Router
	WagerModule   *wager.Module

	wg sync.WaitGroup
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(config.ToObsConfig(cfg))
	logger := obs.Logger

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	bus, err := eventbus.NewNATSEventBus(cfg.NATS.URL, cfg.NATS.QueueGroup, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	logger.InfoContext(ctx, "Event bus connected", attr.String("nats_url", cfg.NATS.URL))

	router, err := newMessageRouter(logger)
	if err != nil {
		bus.Close()
		db.Close()
		return nil, err
	}

	httpRouter := chi.NewRouter()
	var tokens jwt.Service
	if cfg.HTTP.JWTSecret != "" {
		tokens = jwt.NewService(cfg.HTTP.JWTSecret, cfg.HTTP.TokenTTL)
	}

	wagerModule, err := wager.NewWagerModule(ctx, obs, bus, router, ctx, db, wager.Options{
		DSN:           cfg.Postgres.DSN,
		DefaultTeeBox: cfg.Wager.DefaultTeeBox,
		AutoPostDelay: cfg.Wager.AutoPostDelay,
		HTTPRouter:    httpRouter,
		HTTP: wagerhttp.Options{
			RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
			Burst:             cfg.HTTP.Burst,
			AllowedOrigins:    cfg.HTTP.AllowedOrigins,
			Tokens:            tokens,
		},
	})
	if err != nil {
		bus.Close()
		db.Close()
		return nil, fmt.Errorf("failed to initialize wager module: %w", err)
	}

	return &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
		Router:        router,
		HTTPRouter:    httpRouter,
		WagerModule:   wagerModule,
	}, nil
}
