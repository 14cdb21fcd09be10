package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO brand_analyses
  (id, url, suggested_brands, suggested_brand, banner_ad_url, banner_archive_url, banner_error, created_at)
VALUES (?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  suggested_brands=VALUES(suggested_brands), suggested_brand=VALUES(suggested_brand),
  banner_ad_url=VALUES(banner_ad_url), banner_archive_url=VALUES(banner_archive_url), banner_error=VALUES(banner_error);
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
		nullIfEmpty(a.BannerAdURL),
		nullIfEmpty(a.BannerArchiveURL),
		nullIfEmpty(a.BannerError),
		createdAt.UTC(),
	)
	return err
}

// Paginate returns a page of analysis records ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, url, suggested_brands, suggested_brand, banner_ad_url, banner_archive_url, banner_error, created_at
FROM brand_analyses
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Record{}
	for rows.Next() {
		var (
			a                          domain.Record
			id                         string
			bannerURL, archive, bnrErr sql.NullString
		)
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
