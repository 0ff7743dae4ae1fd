package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"seodash/internal/auth"
	"seodash/internal/cache"
	"seodash/internal/config"
	"seodash/internal/db"
	"seodash/internal/email"
	"seodash/internal/fixtures"
	"seodash/internal/jobs"
	"seodash/internal/keywords"
	"seodash/internal/metrics"
	"seodash/internal/models"
	"seodash/internal/reports"
	"seodash/internal/server"
)

const (
	devKeywordsPerSite = 200

	// defaultTrackedSite is marked as tracked on a fresh database when
	// neither TRACKED_SITE nor the config file names one.
	defaultTrackedSite = "tokyoweekender.com"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	setupLogger(cfg)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			AttachStacktrace: true,
		}); err != nil {
			slog.Warn("failed to initialize sentry", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	if yamlCfg != nil && yamlCfg.TrackedSite != "" {
		cfg.TrackedSite = yamlCfg.TrackedSite
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("migrations completed")

	if err := database.SyncSites(ctx, catalogueSites(yamlCfg), cfg.TrackedSite); err != nil {
		log.Fatalf("Failed to sync site catalogue: %v", err)
	}
	if cfg.TrackedSite == "" {
		cfg.TrackedSite, err = database.EnsureTrackedSite(ctx, defaultTrackedSite)
		if err != nil {
			log.Fatalf("Failed to resolve tracked site: %v", err)
		}
	}
	slog.Info("tracking site", "site", cfg.TrackedSite)

	if cfg.IsDev() {
		if err := database.SeedDevKeywords(ctx, fixtures.NewFake(time.Now().UnixNano()), devKeywordsPerSite); err != nil {
			slog.Warn("failed to seed development keywords", "error", err)
		}
	}

	var reportCache *cache.Client
	if cfg.RedisURL != "" {
		reportCache, err = cache.NewClient(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer reportCache.Close()
		slog.Info("report cache enabled", "ttl", cfg.CacheTTL)
	}

	metrics.Init(database)
	defer metrics.Flush()

	var tokens auth.Authenticator
	if cfg.TokenSecret != "" {
		jwt, err := auth.NewJWT(cfg.TokenSecret, cfg.TokenTTL)
		if err != nil {
			log.Fatalf("Invalid TOKEN_SECRET: %v", err)
		}
		tokens = jwt
	} else {
		slog.Info("API bearer tokens disabled (TOKEN_SECRET not set)")
	}

	if !cfg.IsOIDCEnabled() && !cfg.IsDev() {
		log.Fatal("OIDC_ISSUER and OIDC_CLIENT_ID are required outside development")
	}

	svc := reports.NewService(cache.NewStore(database, reportCache), reportCache)

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, server.Deps{
		Store:     database,
		Users:     database,
		Reports:   svc,
		Cache:     reportCache,
		Catalogue: yamlCfg,
		Tokens:    tokens,
		Scorer:    scorer(yamlCfg),
	}); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go jobs.NewWarmer(svc, cfg.WarmInterval).Start(ctx)

	scheduler := jobs.NewScheduler(
		jobs.NewImporter(database, reportCache, yamlCfg),
		cfg.ImportDir,
		email.NewDigester(cfg, svc, database),
	)
	if err := scheduler.SetupJobs(cfg.ImportSchedule, cfg.DigestSchedule); err != nil {
		log.Fatalf("Invalid job schedule: %v", err)
	}
	scheduler.Start()

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	scheduler.Stop()
	if err := srv.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server exited")
}

// setupLogger installs a text handler in development and JSON elsewhere.
func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	var handler slog.Handler
	if cfg.IsDev() {
		level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func catalogueSites(yamlCfg *config.YAMLConfig) []models.Site {
	if yamlCfg == nil {
		return nil
	}
	sites := make([]models.Site, 0, len(yamlCfg.Sites))
	for _, s := range yamlCfg.Sites {
		sites = append(sites, models.Site{Name: s.Name, DisplayName: s.DisplayName})
	}
	return sites
}

// scorer returns the configured opportunity weights, or nil for the defaults.
func scorer(yamlCfg *config.YAMLConfig) keywords.Scorer {
	if yamlCfg == nil || yamlCfg.Scoring.IsZero() {
		return nil
	}
	return keywords.WeightedScorer{
		TrafficGap: yamlCfg.Scoring.TrafficGap,
		Volume:     yamlCfg.Scoring.Volume,
		Difficulty: yamlCfg.Scoring.Difficulty,
	}
}
