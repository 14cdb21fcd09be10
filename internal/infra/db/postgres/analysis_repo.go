package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO brand_analyses
  (id, url, suggested_brands, suggested_brand, banner_ad_url, banner_archive_url, banner_error, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  suggested_brands=EXCLUDED.suggested_brands,
  suggested_brand=EXCLUDED.suggested_brand,
  banner_ad_url=EXCLUDED.banner_ad_url,
  banner_archive_url=EXCLUDED.banner_archive_url,
  banner_error=EXCLUDED.banner_error;
`
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		string(a.ID),
		a.URL,
		a.SuggestedBrands,
		a.SuggestedBrand,
		nullString(a.BannerAdURL),
		nullString(a.BannerArchiveURL),
		nullString(a.BannerError),
		createdAt,
	)
	return err
}

// Paginate returns a page of analysis records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 { page = 1 }
	if pageSize <= 0 { pageSize = 20 }
	offset := (page - 1) * pageSize

	const q = `
SELECT id, url, suggested_brands, suggested_brand, banner_ad_url, banner_archive_url, banner_error, created_at
FROM brand_analyses
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil { return nil, err }
	defer rows.Close()

	out := []*domain.Record{}
	for rows.Next() {
		var a domain.Record
		var id string
		var bannerURL, archive, bnrErr sql.NullString
		if err := rows.Scan(&id, &a.URL, &a.SuggestedBrands, &a.SuggestedBrand, &bannerURL, &archive, &bnrErr, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ID = domain.ID(id)
		a.BannerAdURL = bannerURL.String
		a.BannerArchiveURL = archive.String
		a.BannerError = bnrErr.String
		out = append(out, &a)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
