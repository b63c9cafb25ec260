package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
)

// Start runs the message router, the wager module and the HTTP API until ctx
// is cancelled, then shuts everything down.
func (app *App) Start(ctx context.Context) error {
	logger := app.Observability.Logger
	app.Observability.StartMetricsServer()

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- app.Router.Run(ctx)
	}()
	<-app.Router.Running()

	app.wg.Add(1)
	go app.WagerModule.Run(ctx, &app.wg)

	srv := &http.Server{
		Addr:              app.Config.HTTP.Address,
		Handler:           app.HTTPRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", attr.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-routerErr:
		if err != nil {
			runErr = fmt.Errorf("message router stopped: %w", err)
		}
	case err := <-serverErr:
		runErr = fmt.Errorf("http server stopped: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}
	app.Close(shutdownCtx)
	return runErr
}
