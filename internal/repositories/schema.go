package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// The schema runs unchanged on postgres and sqlite: ids and JSON are TEXT,
// timestamps are unix seconds and dates are YYYY-MM-DD strings.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS brands (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		industry    TEXT NOT NULL DEFAULT '',
		website     TEXT NOT NULL DEFAULT '',
		keywords    TEXT NOT NULL DEFAULT '[]',
		competitors TEXT NOT NULL DEFAULT '[]',
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS search_queries (
		id               TEXT PRIMARY KEY,
		brand_id         TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
		query_text       TEXT NOT NULL,
		platform         TEXT NOT NULL,
		response_text    TEXT NOT NULL,
		analysis         TEXT NOT NULL DEFAULT '{}',
		sentiment_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
		visibility_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		policy_version   TEXT NOT NULL DEFAULT '',
		created_at       BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_search_queries_brand_created ON search_queries (brand_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS mention_records (
		id               TEXT PRIMARY KEY,
		search_query_id  TEXT NOT NULL REFERENCES search_queries(id) ON DELETE CASCADE,
		brand_id         TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
		position         INTEGER NOT NULL DEFAULT 1,
		mention_type     TEXT NOT NULL,
		context          TEXT NOT NULL DEFAULT '',
		sentiment        TEXT NOT NULL,
		confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at       BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mention_records_brand_created ON mention_records (brand_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS daily_analytics (
		id                  TEXT PRIMARY KEY,
		brand_id            TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
		date                TEXT NOT NULL,
		platform            TEXT NOT NULL,
		total_mentions      INTEGER NOT NULL DEFAULT 0,
		direct_mentions     INTEGER NOT NULL DEFAULT 0,
		indirect_mentions   INTEGER NOT NULL DEFAULT 0,
		visibility_score    DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_sentiment_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		positive_sentiment  INTEGER NOT NULL DEFAULT 0,
		negative_sentiment  INTEGER NOT NULL DEFAULT 0,
		neutral_sentiment   INTEGER NOT NULL DEFAULT 0,
		created_at          BIGINT NOT NULL,
		UNIQUE (brand_id, date, platform)
	)`,
	`CREATE TABLE IF NOT EXISTS competitor_snapshots (
		id               TEXT PRIMARY KEY,
		brand_id         TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
		competitor_name  TEXT NOT NULL,
		date             TEXT NOT NULL,
		platform         TEXT NOT NULL,
		mentions         INTEGER NOT NULL DEFAULT 0,
		visibility_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_sentiment    DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at       BIGINT NOT NULL,
		UNIQUE (brand_id, competitor_name, date, platform)
	)`,
}

// Migrate creates any missing tables and indexes
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
