package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS brand_analyses (
  id                 UUID        PRIMARY KEY,
  url                TEXT        NOT NULL,
  suggested_brands   JSONB       NOT NULL,
  suggested_brand    TEXT        NOT NULL,
  banner_ad_url      TEXT,
  banner_archive_url TEXT,
  banner_error       TEXT,
  created_at         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_brand_analyses_created ON brand_analyses (created_at DESC);`

// EnsureSchema creates the history table when missing
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
