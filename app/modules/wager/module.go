package wager

import (
	"context"
	"fmt"
	"sync"
	"time"

	wagerservice "github.com/Black-And-White-Club/wager-bot/app/modules/wager/application"
	wagerhandlers "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/handlers"
	wagerhttp "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/http"
	"github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/parsers"
	wagerqueue "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/queue"
	wagerdb "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/repositories"
	wagerrouter "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/router"
	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
	"github.com/Black-And-White-Club/wager-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/wager-bot/pkg/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Options carries the wiring that differs between deployments.
type Options struct {
	// DSN enables the River auto-post queue when AutoPostDelay is non-zero.
	DSN           string
	DefaultTeeBox string
	AutoPostDelay time.Duration

	// HTTPRouter, when set, gets the read-only API mounted under /api/wagers.
	HTTPRouter chi.Router
	HTTP       wagerhttp.Options
}

// Module represents the wager module.
type Module struct {
	WagerService *wagerservice.WagerService
	WagerRouter  *wagerrouter.WagerRouter
	QueueService wagerqueue.QueueService
	cancelFunc   context.CancelFunc
	obs          *observability.Observability
}

// NewWagerModule creates and initializes a new wager module.
func NewWagerModule(
	ctx context.Context,
	obs *observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
	db *bun.DB,
	opts Options,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "wager.NewWagerModule initializing")

	// 1. Initialize Repository
	var repo wagerdb.Repository
	if db != nil {
		repo = wagerdb.NewRepository(db, logger)
	}

	// 2. Initialize Metrics
	metrics := wagerservice.NewPrometheusMetrics(obs.Registry)

	// 3. Initialize Service and restore the persisted round
	service := wagerservice.NewWagerService(repo, logger, metrics, tracer, db, wagerservice.Options{
		DefaultTeeBox: opts.DefaultTeeBox,
		AutoPostDelay: opts.AutoPostDelay,
	})
	if err := service.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load wager state: %w", err)
	}

	// 4. Initialize Handlers
	handlers := wagerhandlers.NewWagerHandlers(service, parsers.NewFactory(), logger, tracer)

	// 5. Initialize Router
	wagerRouter := wagerrouter.NewWagerRouter(logger, router, eventBus, eventBus, tracer)
	if err := wagerRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure wager router: %w", err)
	}

	m := &Module{
		WagerService: service,
		WagerRouter:  wagerRouter,
		obs:          obs,
	}

	// 6. Auto-post queue
	if opts.AutoPostDelay > 0 && opts.DSN != "" && db != nil {
		queue, err := wagerqueue.NewService(ctx, db, logger, opts.DSN, metrics, service, eventBus)
		if err != nil {
			return nil, fmt.Errorf("failed to create wager queue service: %w", err)
		}
		service.UseScheduler(queue)
		m.QueueService = queue
	} else {
		logger.InfoContext(ctx, "Auto-post disabled", attr.Duration("delay", opts.AutoPostDelay))
	}

	// 7. Read API
	if opts.HTTPRouter != nil {
		wagerhttp.Mount(opts.HTTPRouter, wagerhttp.NewHandlers(service, logger), opts.HTTP)
	}

	return m, nil
}

// Run starts the wager module and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.obs.Logger
	logger.InfoContext(ctx, "Starting wager module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start wager queue", attr.Error(err))
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Wager module goroutine stopped")
}

// Close shuts down the wager module.
func (m *Module) Close() error {
	logger := m.obs.Logger
	logger.Info("Stopping wager module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.QueueService != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.QueueService.Stop(stopCtx); err != nil {
			logger.Error("Error stopping wager queue", attr.Error(err))
		}
	}

	if m.WagerRouter != nil {
		if err := m.WagerRouter.Close(); err != nil {
			logger.Error("Error closing WagerRouter from module", attr.Error(err))
			return fmt.Errorf("error closing WagerRouter: %w", err)
		}
	}

	logger.Info("Wager module stopped")
	return nil
}
