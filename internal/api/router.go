package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lending-engine/internal/api/handler"
	mw "lending-engine/internal/api/middleware"
	"lending-engine/internal/config"
	"lending-engine/internal/domain/book"
	"lending-engine/internal/domain/lending"
	"lending-engine/internal/domain/member"
	"lending-engine/internal/query"
)

func SetupRouter(
	engine lending.LendingService,
	catalog book.CatalogService,
	members member.MemberService,
	queries query.Service,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupBookRoutes(router, catalog, queries, logger)
	setupMemberRoutes(router, members, queries, logger)
	setupLoanRoutes(router, engine, queries, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupBookRoutes(router *chi.Mux, catalog book.CatalogService, queries query.Service, logger *slog.Logger) {
	h := handler.NewBookHandler(catalog, queries, logger)

	router.Route("/books", func(r chi.Router) {
		r.Post("/", h.CreateBook)
		r.Get("/", h.ListBooks)
		r.Route("/{bookID}", func(r chi.Router) {
			r.Get("/", h.GetBook)
			r.Put("/", h.UpdateBook)
			r.Delete("/", h.DeleteBook)
		})
	})
}

func setupMemberRoutes(router *chi.Mux, members member.MemberService, queries query.Service, logger *slog.Logger) {
	h := handler.NewMemberHandler(members, queries, logger)

	router.Route("/members", func(r chi.Router) {
		r.Post("/", h.CreateMember)
		r.Get("/", h.ListMembers)
		r.Route("/{memberID}", func(r chi.Router) {
			r.Get("/", h.GetMember)
			r.Put("/email", h.UpdateMemberEmail)
			r.Delete("/", h.DeleteMember)
		})
	})
}

func setupLoanRoutes(router *chi.Mux, engine lending.LendingService, queries query.Service, logger *slog.Logger) {
	h := handler.NewLendingHandler(engine, queries, logger)

	router.Route("/loans", func(r chi.Router) {
		r.Post("/", h.IssueLoan)
		r.Get("/", h.ListLoans)
		r.Get("/{loanID}", h.GetLoan)
		r.Post("/{loanID}/return", h.ReturnLoan)
	})
}
