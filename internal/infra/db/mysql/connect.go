package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
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
  id                 CHAR(36)      NOT NULL PRIMARY KEY,
  url                VARCHAR(2048) NOT NULL,
  suggested_brands   JSON          NOT NULL,
  suggested_brand    VARCHAR(512)  NOT NULL,
  banner_ad_url      TEXT          NULL,
  banner_archive_url TEXT          NULL,
  banner_error       TEXT          NULL,
  created_at         DATETIME(3)   NOT NULL,
  INDEX idx_brand_analyses_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

// EnsureSchema creates the history table when missing
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
