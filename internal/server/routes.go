package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"titan/internal/handlers/api"
	"titan/internal/ledger"
	"titan/internal/middleware"
	"titan/internal/pricing"
	"titan/internal/topics"
)

// Deps are the services the routes are built from.
type Deps struct {
	Ledger        ledger.Ledger
	LedgerBackend string
	Selector      *topics.Selector
	Planner       *topics.Planner
	Resolver      *pricing.Resolver
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(d Deps) {
	// Initialize middleware
	apiKey := middleware.NewAPIKeyMiddleware(s.Cfg.AdminAPIKey)

	// Initialize handlers
	quoteHandler := api.NewQuoteHandler(d.Resolver)
	topicHandler := api.NewTopicHandler(d.Selector, d.Ledger, d.Planner, nil, s.Cfg.Location())
	healthHandler := api.NewHealthHandler(d.Ledger, d.LedgerBackend)

	// Operational routes
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := s.App.Group("/api/v1")

	// Pricing
	v1.Get("/products", quoteHandler.Products)
	v1.Post("/quote", quoteHandler.Create)
	v1.Get("/quote/:product", quoteHandler.Get)

	// Topics
	v1.Post("/topics/next", topicHandler.Next)
	v1.Get("/topics/stats", topicHandler.Stats)
	v1.Get("/topics/plan", topicHandler.Plan)
	v1.Post("/topics/reset/:category", apiKey.RequireAPIKey, topicHandler.Reset)
}
