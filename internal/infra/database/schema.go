package database

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS creator_profiles (
		id             TEXT PRIMARY KEY,
		display_name   TEXT NOT NULL,
		handle         TEXT NOT NULL DEFAULT '',
		niche          TEXT,
		platforms      TEXT[] NOT NULL DEFAULT '{}',
		audience_size  BIGINT NOT NULL DEFAULT 0,
		rate_card      TEXT NOT NULL DEFAULT '',
		bio            TEXT,
		onboarded_at   TIMESTAMPTZ,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS brands (
		id               UUID PRIMARY KEY,
		creator_id       TEXT NOT NULL,
		name             TEXT NOT NULL,
		website          TEXT,
		contact_name     TEXT,
		contact_email    TEXT,
		category         TEXT,
		tags             TEXT[] NOT NULL DEFAULT '{}',
		notes            TEXT,
		stage            TEXT NOT NULL,
		deal_value_cents BIGINT NOT NULL DEFAULT 0,
		position         INT NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_brands_creator_stage ON brands (creator_id, stage, position)`,
	`CREATE TABLE IF NOT EXISTS outreaches (
		id                  UUID PRIMARY KEY,
		creator_id          TEXT NOT NULL,
		brand_id            UUID REFERENCES brands(id) ON DELETE SET NULL,
		brand_name          TEXT NOT NULL,
		contact_email       TEXT NOT NULL,
		product_description TEXT,
		fit_justification   TEXT,
		email1_subject      TEXT,
		email1_body         TEXT,
		email2_subject      TEXT,
		email2_body         TEXT,
		email1_sent_at      TIMESTAMPTZ,
		email2_sent_at      TIMESTAMPTZ,
		email2_due_at       TIMESTAMPTZ,
		auto_send_follow_up BOOLEAN NOT NULL DEFAULT FALSE,
		proposal            JSONB,
		replied_at          TIMESTAMPTZ,
		archived_at         TIMESTAMPTZ,
		proposal_sent_at    TIMESTAMPTZ,
		status              TEXT NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outreaches_creator ON outreaches (creator_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_outreaches_followup ON outreaches (email2_due_at)
		WHERE status = 'sent' AND auto_send_follow_up AND email2_sent_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id          UUID PRIMARY KEY,
		creator_id  TEXT NOT NULL,
		brand_id    UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		status      TEXT NOT NULL,
		fee_cents   BIGINT NOT NULL DEFAULT 0,
		start_date  TIMESTAMPTZ,
		end_date    TIMESTAMPTZ,
		brief       JSONB NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deliverables (
		id          UUID PRIMARY KEY,
		campaign_id UUID NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
		type        TEXT NOT NULL,
		description TEXT,
		due_at      TIMESTAMPTZ,
		status      TEXT NOT NULL,
		posted_url  TEXT,
		posted_at   TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate cria as tabelas que ainda não existem. É idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
