package app

import (
	"context"

	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
)

// Close stops the module, then the router, the bus and the database.
func (app *App) Close(ctx context.Context) {
	logger := app.Observability.Logger

	if err := app.WagerModule.Close(); err != nil {
		logger.Error("Failed to close wager module", attr.Error(err))
	}
	app.wg.Wait()

	if err := app.Router.Close(); err != nil {
		logger.Error("Failed to close message router", attr.Error(err))
	}
	if err := app.EventBus.Close(); err != nil {
		logger.Error("Failed to close event bus", attr.Error(err))
	}
	if err := app.DB.Close(); err != nil {
		logger.Error("Failed to close database", attr.Error(err))
	}
	if err := app.Observability.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down observability", attr.Error(err))
	}
	logger.Info("Application shut down gracefully")
}
