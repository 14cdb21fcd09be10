package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/brand-banner/internal/application"
	appanalysis "github.com/bryanwahyu/brand-banner/internal/application/analysis"
	"github.com/bryanwahyu/brand-banner/internal/config"
	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
	"github.com/bryanwahyu/brand-banner/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/brand-banner/internal/infra/db/mysql"
	"github.com/bryanwahyu/brand-banner/internal/infra/db/postgres"
	"github.com/bryanwahyu/brand-banner/internal/infra/fetcher"
	"github.com/bryanwahyu/brand-banner/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/brand-banner/internal/infra/storage"
	"github.com/bryanwahyu/brand-banner/internal/logging"
	"github.com/bryanwahyu/brand-banner/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		logrus.Fatalf("config load error: %v", err)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()

	ai := openai.NewClient(openai.Options{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		ChatModel:  cfg.OpenAI.ChatModel,
		ImageModel: cfg.OpenAI.ImageModel,
		ImageSize:  cfg.OpenAI.ImageSize,
	})

	svc := &appanalysis.Service{
		Fetcher:   fetcher.NewPageFetcher(cfg.Fetcher.UserAgent, cfg.FetchTimeout()),
		Suggester: ai,
		Banners:   ai,
		Clock:     application.SystemClock{},
		Log:       log,
	}
	checkers := map[string]middleware.HealthChecker{}

	// history database (optional)
	if cfg.Database.Driver != "" {
		db, repo, err := connectDB(ctx, cfg)
		if err != nil {
			log.Fatalf("%s connect error: %v", cfg.Database.Driver, err)
		}
		defer db.Close()
		svc.Repo = repo
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
		log.WithField("driver", cfg.Database.Driver).Info("analysis history enabled")
	}

	// banner archive (optional)
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		svc.Archive = store
		checkers["storage"] = middleware.CheckFunc(store.Check)
		log.WithField("bucket", cfg.Minio.BucketName).Info("banner archive enabled")
	}

	handler := httpserver.NewRouter(svc, log, httpserver.Options{
		StrictURLs:  cfg.Fetcher.StrictURLs,
		CORSOrigins: cfg.Server.CORSOrigins,
		Checkers:    checkers,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
	}

	go func() {
		log.Infof("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}

// connectDB opens the configured driver, creates the history table and
// returns the matching repository.
func connectDB(ctx context.Context, cfg *config.Config) (*sql.DB, domain.Repository, error) {
	var (
		db     *sql.DB
		err    error
		ensure func(context.Context, *sql.DB) error
		repo   domain.Repository
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		ensure = mysqlp.EnsureSchema
		if err == nil {
			repo = mysqlp.NewAnalysisRepository(db)
		}
	case "postgres":
		db, err = postgres.Connect(ctx, cfg.PostgresDSN())
		ensure = postgres.EnsureSchema
		if err == nil {
			repo = postgres.NewAnalysisRepository(db)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := ensure(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, repo, nil
}
