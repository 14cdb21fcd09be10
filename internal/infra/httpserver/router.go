package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	appanalysis "github.com/bryanwahyu/brand-banner/internal/application/analysis"
	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
	"github.com/bryanwahyu/brand-banner/internal/middleware"
)

// Options tune the HTTP surface; the zero value allows any origin and any
// non-empty url.
type Options struct {
	StrictURLs  bool
	CORSOrigins []string
	Checkers    map[string]middleware.HealthChecker
}

type Router struct {
	analysisSvc *appanalysis.Service
	log         logrus.FieldLogger
	strictURLs  bool
}

func NewRouter(analysisSvc *appanalysis.Service, log logrus.FieldLogger, opts Options) http.Handler {
	r := &Router{analysisSvc: analysisSvc, log: log, strictURLs: opts.StrictURLs}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(middleware.Logging(log))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodOptions, http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(opts.Checkers))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/health/ready", middleware.ReadinessHandler(opts.Checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/analyze", r.wrap(r.handleAnalyze))
	if analysisSvc.HistoryEnabled() {
		mux.Get("/analyses", r.wrap(r.handleHistory))
	}

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var (
			fe *domain.FetchError
			se *domain.SuggestionError
		)
		switch {
		case errors.Is(err, domain.ErrInvalidURL):
			writeError(w, http.StatusBadRequest, domain.ErrInvalidURL.Error())
		case errors.As(err, &fe), errors.As(err, &se):
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			r.log.WithError(err).Error("unhandled error")
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

// POST /analyze
// Body: {"url": "<page url>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	if r.strictURLs && body.URL != "" {
		if err := middleware.ValidateURL(body.URL); err != nil {
			r.log.WithField("url", body.URL).WithError(err).Info("rejected url")
			return fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
		}
	}

	res, err := r.analysisSvc.Analyze(req.Context(), body.URL)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidURL) {
			middleware.IncrementAnalyses()
			middleware.IncrementAnalysesFailed()
		}
		return err
	}

	middleware.IncrementAnalyses()
	if len(res.SuggestedBrands) > 0 && res.BannerAdURL == nil {
		middleware.IncrementBannersFailed()
	}
	if res.BannerArchiveURL != "" {
		middleware.IncrementBannersArchived()
	}

	return writeJSON(w, http.StatusOK, res)
}

// GET /analyses?page=&page_size=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	page, size := middleware.ParsePage(req.URL.Query().Get("page"), req.URL.Query().Get("page_size"))

	list, err := r.analysisSvc.History(req.Context(), page, size)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"error": msg})
}
