package analysis

import "context"

// Fetcher returns the visible text of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (PageContent, error)
}

// Suggester asks the completion API for brands matching the page.
type Suggester interface {
	Suggest(ctx context.Context, content PageContent) (SuggestionList, error)
}

// BannerRequester asks the image API for a banner and returns its URL.
type BannerRequester interface {
	RequestBanner(ctx context.Context, brand string) (string, error)
}

// BannerArchive copies a generated banner into object storage.
type BannerArchive interface {
	Archive(ctx context.Context, id ID, imageURL string) (string, error)
}

// Repository port for the analysis history
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Paginate(ctx context.Context, page, pageSize int) ([]*Record, error)
}
