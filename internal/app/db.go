package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/store"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/wizard"
)

// ensureSchema creates the tables if they do not exist yet.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return nil
	}

	// --- pricing_tables ---
	// one row per published version; rows are never updated
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS pricing_tables (
    id           BIGSERIAL PRIMARY KEY,
    product_line TEXT NOT NULL,
    version      BIGINT NOT NULL,
    document     JSONB NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (product_line, version)
);
`); err != nil {
		return fmt.Errorf("create pricing_tables: %w", err)
	}

	// --- leads ---
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS leads (
    id                TEXT PRIMARY KEY,
    product_line      TEXT NOT NULL,
    session_id        TEXT NOT NULL DEFAULT '',
    status            TEXT NOT NULL DEFAULT 'nieuw',
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    width_cm          INTEGER NOT NULL,
    height_cm         INTEGER NOT NULL,
    width_bucket      TEXT NOT NULL,
    roof_angle        INTEGER NOT NULL,
    roof_angle_bucket TEXT NOT NULL,
    model             TEXT NOT NULL,
    material          TEXT NOT NULL,
    frame_color       TEXT NOT NULL,
    side_color        TEXT NOT NULL,
    sash_color        TEXT NOT NULL,
    frame_height_tier TEXT NOT NULL,
    elevation         TEXT NOT NULL,
    insulation_tier   TEXT NOT NULL,
    window_count      INTEGER NOT NULL,
    delivery_time     TEXT NOT NULL,
    name              TEXT NOT NULL,
    email             TEXT NOT NULL,
    phone             TEXT NOT NULL,
    address           TEXT NOT NULL,
    postal_code       TEXT NOT NULL,
    city              TEXT NOT NULL,
    comments          TEXT NOT NULL DEFAULT '',
    attachment_url    TEXT NOT NULL DEFAULT '',
    subtotal          NUMERIC(12,2) NOT NULL,
    tax               NUMERIC(12,2) NOT NULL,
    total             NUMERIC(12,2) NOT NULL,
    pricing_version   BIGINT NOT NULL DEFAULT 0,
    price_lines       JSONB NOT NULL DEFAULT '[]'
);
`); err != nil {
		return fmt.Errorf("create leads: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
CREATE INDEX IF NOT EXISTS leads_product_line_created_idx
    ON leads (product_line, created_at DESC);
`); err != nil {
		return fmt.Errorf("create leads index: %w", err)
	}

	// one boolean column per option; new options are added to existing tables
	for _, k := range domain.OptionKeys {
		q := fmt.Sprintf(`ALTER TABLE leads ADD COLUMN IF NOT EXISTS %s BOOLEAN NOT NULL DEFAULT FALSE;`,
			submission.OptionColumn(k))
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("add column %s: %w", submission.OptionColumn(k), err)
		}
	}

	return nil
}

// seedPricing publishes the built-in table for product lines without one.
func seedPricing(ctx context.Context, pg *store.Postgres, logger *zap.Logger) error {
	lines := wizard.ProductLines()
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.ID
	}
	if err := pg.SeedPricing(ctx, ids); err != nil {
		return fmt.Errorf("seed pricing: %w", err)
	}
	logger.Info("pricing tables seeded", zap.Strings("product_lines", ids))
	return nil
}
