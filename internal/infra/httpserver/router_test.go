package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/bryanwahyu/brand-banner/internal/application/analysis"
	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
	aiopenai "github.com/bryanwahyu/brand-banner/internal/infra/ai/openai"
	"github.com/bryanwahyu/brand-banner/internal/infra/fetcher"
)

type stubFetcher struct {
	content domain.PageContent
	err     error
	calls   int
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (domain.PageContent, error) {
	s.calls++
	return s.content, s.err
}

type stubSuggester struct {
	list  domain.SuggestionList
	err   error
	calls int
}

func (s *stubSuggester) Suggest(ctx context.Context, content domain.PageContent) (domain.SuggestionList, error) {
	s.calls++
	return s.list, s.err
}

type stubBanners struct {
	url   string
	err   error
	calls int
}

func (s *stubBanners) RequestBanner(ctx context.Context, brand string) (string, error) {
	s.calls++
	return s.url, s.err
}

type stubRepo struct{ records []*domain.Record }

func (s *stubRepo) Save(ctx context.Context, r *domain.Record) error {
	s.records = append(s.records, r)
	return nil
}

func (s *stubRepo) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	return s.records, nil
}

type fixture struct {
	fetcher   *stubFetcher
	suggester *stubSuggester
	banners   *stubBanners
	svc       *appanalysis.Service
}

func newFixture() *fixture {
	log, _ := test.NewNullLogger()
	f := &fixture{
		fetcher:   &stubFetcher{content: "Example Domain"},
		suggester: &stubSuggester{list: domain.SuggestionList{"Nike", "Adidas", "Puma"}},
		banners:   &stubBanners{url: "https://img/banner.png"},
	}
	f.svc = &appanalysis.Service{
		Fetcher:   f.fetcher,
		Suggester: f.suggester,
		Banners:   f.banners,
		Log:       log,
		NewID:     func() domain.ID { return "analysis-1" },
	}
	return f
}

func (f *fixture) handler(opts Options) http.Handler {
	log, _ := test.NewNullLogger()
	return NewRouter(f.svc, log, opts)
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze_Success(t *testing.T) {
	f := newFixture()
	rec := post(f.handler(Options{}), `{"url": "https://example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"id": "analysis-1",
		"url": "https://example.com",
		"suggested_brands": ["Nike", "Adidas", "Puma"],
		"suggested_brand": "Puma",
		"banner_ad_url": "https://img/banner.png"
	}`, rec.Body.String())
}

func TestAnalyze_MissingURL(t *testing.T) {
	for _, body := range []string{`{}`, `{"url": ""}`, `{"url": "  "}`, ``, `not json`} {
		t.Run(body, func(t *testing.T) {
			f := newFixture()
			rec := post(f.handler(Options{}), body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error": "Please provide a valid website URL"}`, rec.Body.String())
			assert.Zero(t, f.fetcher.calls)
			assert.Zero(t, f.suggester.calls)
			assert.Zero(t, f.banners.calls)
		})
	}
}

func TestAnalyze_FetchFailure(t *testing.T) {
	f := newFixture()
	f.fetcher.err = errors.New("dial tcp: connection refused")

	rec := post(f.handler(Options{}), `{"url": "https://example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Error fetching the page: dial tcp: connection refused"}`, rec.Body.String())
	assert.Zero(t, f.suggester.calls)
	assert.Zero(t, f.banners.calls)
}

func TestAnalyze_SuggestionFailure(t *testing.T) {
	f := newFixture()
	f.suggester.err = errors.New("You exceeded your current quota")

	rec := post(f.handler(Options{}), `{"url": "https://example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "You exceeded your current quota")
	assert.Zero(t, f.banners.calls)
}

func TestAnalyze_BannerFailureReturnsNullBanner(t *testing.T) {
	f := newFixture()
	f.banners.err = errors.New("billing hard limit reached")

	rec := post(f.handler(Options{}), `{"url": "https://example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "banner_ad_url")
	assert.Nil(t, body["banner_ad_url"])
	assert.Equal(t, "Puma", body["suggested_brand"])
}

func TestAnalyze_TwoSuggestions(t *testing.T) {
	f := newFixture()
	f.suggester.list = domain.SuggestionList{"1. Nike", "2. Adidas"}

	rec := post(f.handler(Options{}), `{"url": "https://example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Nike", body["suggested_brand"])
}

func TestAnalyze_StrictURLs(t *testing.T) {
	f := newFixture()
	h := f.handler(Options{StrictURLs: true})

	rec := post(h, `{"url": "http://169.254.169.254/latest/meta-data"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Please provide a valid website URL"}`, rec.Body.String())
	assert.Zero(t, f.fetcher.calls)

	rec = post(h, `{"url": "https://example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyze_LenientByDefault(t *testing.T) {
	f := newFixture()
	rec := post(f.handler(Options{}), `{"url": "not-a-url"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.fetcher.calls)
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture()
	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://game.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	f.handler(Options{}).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestHistory(t *testing.T) {
	f := newFixture()
	rec := httptest.NewRecorder()
	f.handler(Options{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyses", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	f.svc.Repo = &stubRepo{}
	h := f.handler(Options{})
	require.Equal(t, http.StatusOK, post(h, `{"url": "https://example.com"}`).Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyses?page=1&page_size=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.PaginatedRecords
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 5, page.PageSize)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Puma", page.Data[0].SuggestedBrand)
}

func TestHealthEndpoints(t *testing.T) {
	h := newFixture().handler(Options{})
	for _, path := range []string{"/health", "/health/live", "/health/ready", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

// Runs the real fetcher and OpenAI client against fake upstreams.
func TestAnalyze_Integration(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Example Domain</title></head><body><script>x()</script></body></html>`))
	}))
	defer site.Close()

	var userPrompt string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/chat/completions":
			var req struct {
				Messages []struct {
					Content string `json:"content"`
				} `json:"messages"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			if len(req.Messages) == 2 {
				userPrompt = req.Messages[1].Content
			}
			_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"1. Nike\n2. Adidas\n3. Puma"}}]}`))
		case "/v1/images/generations":
			_, _ = w.Write([]byte(`{"created":1,"data":[{"url":"https://img/banner.png"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer api.Close()

	client := aiopenai.NewClient(aiopenai.Options{APIKey: "sk-test", BaseURL: api.URL + "/v1"})
	log, _ := test.NewNullLogger()
	svc := &appanalysis.Service{
		Fetcher:   fetcher.NewPageFetcher("test-agent", 0),
		Suggester: client,
		Banners:   client,
		Log:       log,
	}

	rec := post(NewRouter(svc, log, Options{}), `{"url": "`+site.URL+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body domain.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, domain.SuggestionList{"1. Nike", "2. Adidas", "3. Puma"}, body.SuggestedBrands)
	assert.Equal(t, "Puma", body.SuggestedBrand)
	require.NotNil(t, body.BannerAdURL)
	assert.Equal(t, "https://img/banner.png", *body.BannerAdURL)
	assert.Contains(t, userPrompt, "The webpage content: Example Domain \n\n")
}
