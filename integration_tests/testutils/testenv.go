//go:build integration

package testutils

import (
	"context"
	"database/sql"
	"fmt"

	wagermigrations "github.com/Black-And-White-Club/wager-bot/app/modules/wager/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/wager-bot/integration_tests/containers"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// TestEnvironment is a migrated Postgres database plus a NATS server.
type TestEnvironment struct {
	DB      *bun.DB
	DSN     string
	NATSURL string

	cleanup []func()
}

// NewTestEnvironment starts both containers and applies the wager migrations.
// The caller owns the environment and must Close it.
func NewTestEnvironment(ctx context.Context) (env *TestEnvironment, err error) {
	env = &TestEnvironment{}
	defer func() {
		if err != nil {
			env.Close()
		}
	}()

	pg, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}
	env.cleanup = append(env.cleanup, func() { _ = pg.Terminate(context.Background()) })
	env.DSN = dsn

	nc, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		return nil, err
	}
	env.cleanup = append(env.cleanup, func() { _ = nc.Terminate(context.Background()) })
	env.NATSURL = natsURL

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	env.DB = bun.NewDB(sqldb, pgdialect.New())
	env.cleanup = append(env.cleanup, func() { _ = env.DB.Close() })

	migrator := migrate.NewMigrator(env.DB, wagermigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return env, nil
}

// Reset empties the wager store between tests.
func (e *TestEnvironment) Reset(ctx context.Context) error {
	_, err := e.DB.ExecContext(ctx, "TRUNCATE wager_store")
	return err
}

func (e *TestEnvironment) Close() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
	e.cleanup = nil
}
