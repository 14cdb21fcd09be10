package analysis

import (
	"context"
	"sync"

	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
)

type fakeFetcher struct {
	content domain.PageContent
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (domain.PageContent, error) {
	f.calls++
	return f.content, f.err
}

type fakeSuggester struct {
	list  domain.SuggestionList
	err   error
	calls int
	got   domain.PageContent
}

func (f *fakeSuggester) Suggest(ctx context.Context, content domain.PageContent) (domain.SuggestionList, error) {
	f.calls++
	f.got = content
	return f.list, f.err
}

type fakeBanners struct {
	url   string
	err   error
	calls int
	brand string
}

func (f *fakeBanners) RequestBanner(ctx context.Context, brand string) (string, error) {
	f.calls++
	f.brand = brand
	return f.url, f.err
}

type fakeArchive struct {
	url string
	err error
}

func (f *fakeArchive) Archive(ctx context.Context, id domain.ID, imageURL string) (string, error) {
	return f.url, f.err
}

type fakeRepo struct {
	mu      sync.Mutex
	saved   []*domain.Record
	saveErr error
}

func (r *fakeRepo) Save(ctx context.Context, rec *domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, rec)
	return r.saveErr
}

func (r *fakeRepo) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved, nil
}
