// Package api exposes the analysis engine over HTTP. The API is a thin
// host wrapper: it converts JSON payloads into datasets, runs the engine,
// and serves stored reports. All decision logic lives in the engine.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"statscope/app"
	"statscope/domain/analysis"
	internal "statscope/internal"
	"statscope/ports"
)

// App represents the HTTP application
type App struct {
	router  *chi.Mux
	config  analysis.AnalyzerConfig
	reports ports.ReportRepository
	logger  *internal.Logger
}

// NewApp creates the HTTP application around a base analyzer config and a
// report repository. Per-request explain modes never mutate the base config.
func NewApp(config analysis.AnalyzerConfig, reports ports.ReportRepository) *App {
	a := &App{
		router:  chi.NewRouter(),
		config:  config.Normalize(),
		reports: reports,
		logger:  internal.DefaultLogger,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// Router returns the configured HTTP handler
func (a *App) Router() http.Handler {
	return a.router
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Post("/api/analyze", a.handleAnalyze)
	a.router.Post("/api/analyze/sample", a.handleAnalyzeSample)
	a.router.Get("/api/reports", a.handleListReports)
	a.router.Get("/api/reports/{id}", a.handleGetReport)
	a.router.Get("/api/reports/{id}/export", a.handleExportReport)
}

// serviceFor builds the engine for one request, honoring a per-request
// explain mode without touching the shared base config.
func (a *App) serviceFor(mode analysis.ExplainMode) *app.AnalysisService {
	config := a.config
	if mode == analysis.ExplainTechnical || mode == analysis.ExplainPlain {
		config.ExplainMode = mode
	}
	return app.NewAnalysisService(config)
}
