package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/brand-banner/internal/application"
	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
)

// Service runs the fetch → suggest → banner pipeline for one URL.
// Archive and Repo are optional. Service holds no per-request state and is
// safe for concurrent use.
type Service struct {
	Fetcher   domain.Fetcher
	Suggester domain.Suggester
	Banners   domain.BannerRequester
	Archive   domain.BannerArchive
	Repo      domain.Repository
	Clock     application.Clock
	Log       logrus.FieldLogger
	NewID     func() domain.ID
}

func newID() domain.ID { return domain.ID(uuid.New().String()) }

// Analyze returns a *domain.FetchError or *domain.SuggestionError when those
// stages fail. A banner failure only leaves BannerAdURL nil.
func (s *Service) Analyze(ctx context.Context, url string) (*domain.Result, error) {
	if strings.TrimSpace(url) == "" {
		return nil, domain.ErrInvalidURL
	}

	idFn := s.NewID
	if idFn == nil {
		idFn = newID
	}
	id := idFn()
	log := s.logger().WithFields(logrus.Fields{"analysis_id": id, "url": url})

	stage := func(st domain.Stage) { log.WithField("stage", st).Debug("analysis stage") }
	fail := func(err error) error {
		log.WithField("stage", domain.StageFailed).WithError(err).Warn("analysis failed")
		return err
	}

	stage(domain.StageFetching)
	content, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		var fe *domain.FetchError
		if !errors.As(err, &fe) {
			err = &domain.FetchError{URL: url, Err: err}
		}
		return nil, fail(err)
	}

	stage(domain.StageSuggesting)
	list, err := s.Suggester.Suggest(ctx, content)
	if err != nil {
		var se *domain.SuggestionError
		if !errors.As(err, &se) {
			err = &domain.SuggestionError{Err: err}
		}
		return nil, fail(err)
	}
	if list == nil {
		list = domain.SuggestionList{}
	}

	res := &domain.Result{
		ID:              id,
		URL:             url,
		SuggestedBrands: list,
		SuggestedBrand:  domain.SelectBrand(list),
	}

	var bannerErr string
	if len(list) > 0 {
		stage(domain.StageRequestingBanner)
		bannerURL, err := s.Banners.RequestBanner(ctx, res.SuggestedBrand)
		if err != nil {
			var be *domain.BannerError
			if !errors.As(err, &be) {
				err = &domain.BannerError{Brand: res.SuggestedBrand, Err: err}
			}
			bannerErr = err.Error()
			log.WithError(err).Warn("banner generation failed, continuing without banner")
		} else {
			res.BannerAdURL = &bannerURL
			res.BannerArchiveURL = s.archive(ctx, log, id, bannerURL)
		}
	}

	stage(domain.StageDone)
	s.record(ctx, log, res, bannerErr)
	return res, nil
}

// History returns one page of past analyses.
func (s *Service) History(ctx context.Context, page, pageSize int) (*domain.PaginatedRecords, error) {
	if s.Repo == nil {
		return nil, errors.New("analysis history is not configured")
	}
	if page <= 0 {
		page = 1
	}
	switch {
	case pageSize <= 0:
		pageSize = 20
	case pageSize > 100:
		pageSize = 100
	}
	list, err := s.Repo.Paginate(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &domain.PaginatedRecords{Data: list, Page: page, PageSize: pageSize}, nil
}

// HistoryEnabled reports whether a repository is wired in.
func (s *Service) HistoryEnabled() bool { return s.Repo != nil }

func (s *Service) archive(ctx context.Context, log logrus.FieldLogger, id domain.ID, bannerURL string) string {
	if s.Archive == nil {
		return ""
	}
	archived, err := s.Archive.Archive(ctx, id, bannerURL)
	if err != nil {
		log.WithError(err).Warn("banner archive failed")
		return ""
	}
	return archived
}

func (s *Service) record(ctx context.Context, log logrus.FieldLogger, res *domain.Result, bannerErr string) {
	if s.Repo == nil {
		return
	}
	rec := &domain.Record{
		ID:               res.ID,
		URL:              res.URL,
		SuggestedBrands:  res.SuggestedBrands,
		SuggestedBrand:   res.SuggestedBrand,
		BannerArchiveURL: res.BannerArchiveURL,
		BannerError:      bannerErr,
		CreatedAt:        s.now(),
	}
	if res.BannerAdURL != nil {
		rec.BannerAdURL = *res.BannerAdURL
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		log.WithError(err).Warn("failed to save analysis history")
	}
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return application.SystemClock{}.Now()
	}
	return s.Clock.Now()
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
