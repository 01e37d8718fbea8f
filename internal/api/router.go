package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openagora/agora/internal/api/handlers"
	mw "github.com/openagora/agora/internal/api/middleware"
	"github.com/openagora/agora/internal/buildconfig"
	"github.com/openagora/agora/internal/config"
	"github.com/openagora/agora/internal/domain"
	"github.com/openagora/agora/internal/llm"
	"github.com/openagora/agora/internal/service"
	"github.com/openagora/agora/internal/store"
	"go.uber.org/zap"
)

// App holds the router and request metrics for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	argumentStore := store.NewArgumentStore(db)
	voteStore := store.NewVoteStore(db)
	evidenceStore := store.NewEvidenceStore(db)
	roundStore := store.NewRoundStore(db)
	sessionStore := store.NewSessionStore(db)

	// Generator via provider factory; a failed init degrades to the mock so
	// debates still run with placeholder content.
	provider := config.LLMProvider()
	generator, err := llm.NewClient(provider, config.LLMAPIKey())
	if err != nil {
		logger.Warn("LLM client initialization failed, using mock", zap.String("provider", provider), zap.Error(err))
		generator = llm.NewMockClient()
	} else {
		logger.Info("LLM client initialized", zap.String("provider", provider))
	}

	// Services
	conductor := service.NewRoundConductor(argumentStore, evidenceStore, roundStore, generator, nil, logger)
	conductor.SetGenerationTimeout(config.GenerationTimeout())
	conductor.SetMaxRetries(config.GenerationMaxRetries())

	debateSvc := service.NewDebateService(argumentStore, voteStore, evidenceStore, roundStore, conductor, logger)
	votingSvc := service.NewVotingService(argumentStore, logger)
	evidenceSvc := service.NewEvidenceService(evidenceStore, argumentStore, logger)
	workflowSvc := service.NewWorkflowService(sessionStore, logger)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(workflowSvc)
	debateHandler := handlers.NewDebateHandler(debateSvc)
	voteHandler := handlers.NewVoteHandler(votingSvc, debateSvc)
	evidenceHandler := handlers.NewEvidenceHandler(evidenceSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health (no auth)
	r.Get("/health", healthHandler(db))

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		// Workflow sessions
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetByID)
				r.Post("/advance", sessionHandler.Advance)
			})
		})

		// Debates
		r.Route("/debates", func(r chi.Router) {
			r.Post("/", debateHandler.Start)
			r.Get("/{sessionID}", debateHandler.GetBySession)
		})

		// Arguments: votes and evidence attachment
		r.Route("/arguments/{id}", func(r chi.Router) {
			r.Post("/votes", voteHandler.Cast)
			r.Get("/votes", voteHandler.List)
			r.Post("/evidence", evidenceHandler.Attach)
		})

		// Evidence
		r.Route("/evidence", func(r chi.Router) {
			r.Post("/", evidenceHandler.Create)
			r.Get("/{id}", evidenceHandler.GetByID)
		})
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(db *pgxpool.Pool, logger *zap.Logger) *chi.Mux {
	return NewApp(db, logger).Router
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"version":        buildconfig.Version(),
			"commit":         buildconfig.Commit(),
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.ArgumentStore = (*store.ArgumentStore)(nil)
	_ domain.VoteStore     = (*store.VoteStore)(nil)
	_ domain.EvidenceStore = (*store.EvidenceStore)(nil)
	_ domain.RoundStore    = (*store.RoundStore)(nil)
	_ domain.SessionStore  = (*store.SessionStore)(nil)
	_ domain.Generator     = (*llm.OpenAIClient)(nil)
	_ domain.Generator     = (*llm.AnthropicClient)(nil)
	_ domain.Generator     = (*llm.MockClient)(nil)
)
