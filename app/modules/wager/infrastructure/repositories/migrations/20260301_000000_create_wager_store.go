package wagermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating wager_store table...")

		if _, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS wager_store (
				key TEXT PRIMARY KEY,
				value JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`); err != nil {
			return fmt.Errorf("failed to create wager_store table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping wager_store table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS wager_store;`); err != nil {
			return fmt.Errorf("failed to drop wager_store table: %w", err)
		}
		return nil
	})
}
