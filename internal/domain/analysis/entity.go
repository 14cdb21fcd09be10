package analysis

import "time"

// ID identifies one analysis run
type ID string

// Stage of the analysis pipeline
type Stage string

const (
	StageIdle             Stage = "idle"
	StageFetching         Stage = "fetching"
	StageSuggesting       Stage = "suggesting"
	StageRequestingBanner Stage = "requesting_banner"
	StageDone             Stage = "done"
	StageFailed           Stage = "failed"
)

// NoBrandFound is the selected brand when the completion reply had no lines.
const NoBrandFound = "No suitable brand found"

// PageContent is the visible text of one page
type PageContent string

// SuggestionList keeps the order returned by the completion API.
type SuggestionList []string

// Result is what POST /analyze returns on success
type Result struct {
	ID               ID             `json:"id"`
	URL              string         `json:"url"`
	SuggestedBrands  SuggestionList `json:"suggested_brands"`
	SuggestedBrand   string         `json:"suggested_brand"`
	BannerAdURL      *string        `json:"banner_ad_url"`
	BannerArchiveURL string         `json:"banner_archive_url,omitempty"`
}

// Record is a Result kept in the analysis history
type Record struct {
	ID               ID             `json:"id"`
	URL              string         `json:"url"`
	SuggestedBrands  SuggestionList `json:"suggested_brands"`
	SuggestedBrand   string         `json:"suggested_brand"`
	BannerAdURL      string         `json:"banner_ad_url,omitempty"`
	BannerArchiveURL string         `json:"banner_archive_url,omitempty"`
	BannerError      string         `json:"banner_error,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// PaginatedRecords is one page of history
type PaginatedRecords struct {
	Data     []*Record `json:"data"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}
