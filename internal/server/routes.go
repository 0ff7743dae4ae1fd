package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seodash/internal/auth"
	"seodash/internal/cache"
	"seodash/internal/config"
	"seodash/internal/handlers"
	"seodash/internal/handlers/api"
	"seodash/internal/keywords"
	"seodash/internal/middleware"
	"seodash/internal/models"
	"seodash/internal/reports"
)

// Store is everything the routes need from the database.
type Store interface {
	keywords.Store
	api.StatusStore
	ReplaceSiteKeywords(ctx context.Context, site string, records []models.KeywordRecord) (uuid.UUID, error)
	SaveSnapshot(ctx context.Context, site, kind string, payload any) (*models.Snapshot, error)
	GetUserBySub(ctx context.Context, sub string) (*models.User, error)
}

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Store     Store
	Users     handlers.UserStore // required when OIDC is configured
	Reports   *reports.Service
	Cache     *cache.Client
	Catalogue *config.YAMLConfig
	Tokens    auth.Authenticator
	Scorer    keywords.Scorer
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) error {
	// Without OIDC, development servers run open and anything else refuses pages.
	authDisabled := !s.Cfg.IsOIDCEnabled() && s.Cfg.IsDev()
	if authDisabled {
		slog.Warn("OIDC not configured: authentication disabled in development")
	}
	authMiddleware := middleware.NewAuthMiddleware(deps.Store, deps.Tokens, authDisabled)

	keywordStore := cache.NewStore(deps.Store, deps.Cache)
	svc := deps.Reports
	if svc == nil {
		svc = reports.NewService(keywordStore, deps.Cache)
	}
	tracked := s.Cfg.TrackedSite

	healthHandler := api.NewHealthHandler(deps.Store)
	analysisHandler := api.NewAnalysisHandler(svc, deps.Store, tracked)
	keywordHandler := api.NewKeywordHandler(keywordStore, tracked)
	competitorHandler := api.NewCompetitorHandler(keywordStore, tracked, deps.Scorer)
	importHandler := api.NewImportHandler(deps.Store, deps.Cache, deps.Catalogue)
	tokenHandler := api.NewTokenHandler(deps.Tokens)
	dashboardHandler := handlers.NewDashboardHandler(svc, tracked)

	if s.Cfg.IsOIDCEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, deps.Users)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	}

	// Unauthenticated
	s.App.Get("/api/health", healthHandler.Health)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.Gatherers{prometheus.DefaultGatherer, s.Registry},
		promhttp.HandlerOpts{},
	)))

	s.App.Get("/", authMiddleware.RequireAuth, dashboardHandler.Index)
	s.App.Post("/auth/token", authMiddleware.RequireSession, tokenHandler.Issue)

	apiGroup := s.App.Group("/api", authMiddleware.RequireAuth)

	apiGroup.Get("/database/status", healthHandler.DatabaseStatus)
	apiGroup.Post("/database/migrate", authMiddleware.RequireAdmin, importHandler.Upload)

	apiGroup.Get("/analysis/summary", analysisHandler.Summary)
	apiGroup.Get("/analysis/performance", analysisHandler.Performance)
	apiGroup.Get("/analysis/content-gaps", analysisHandler.ContentGaps)
	apiGroup.Get("/analysis/serp-features", analysisHandler.SERPFeatures)
	apiGroup.Post("/analysis/refresh", authMiddleware.RequireAdmin, analysisHandler.Refresh)
	apiGroup.Get("/content/recommendations", analysisHandler.Recommendations)

	apiGroup.Get("/keywords", keywordHandler.List)
	apiGroup.Get("/keywords/search", keywordHandler.Search)
	apiGroup.Get("/keywords/locations", keywordHandler.Locations)
	apiGroup.Get("/keywords/top-performing", keywordHandler.TopPerforming)
	apiGroup.Get("/keywords/improvement-opportunities", keywordHandler.ImprovementOpportunities)
	apiGroup.Get("/keywords/export", keywordHandler.Export)

	apiGroup.Get("/competitors/summary", competitorHandler.Summary)
	apiGroup.Get("/competitors/opportunities", competitorHandler.Opportunities)
	apiGroup.Get("/competitors/:site/keywords", competitorHandler.Keywords)
	apiGroup.Get("/competitors/:site/comparison", competitorHandler.Comparison)

	apiGroup.Use(func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "unknown endpoint "+c.Path())
	})

	return nil
}
