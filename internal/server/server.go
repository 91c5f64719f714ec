package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loandesk/internal/common/config"
	"loandesk/internal/common/logger"
)

// HealthChecker is anything that can report liveness of a dependency.
type HealthChecker func(ctx context.Context) error

// Config holds everything Run needs to assemble the server.
type Config struct {
	Server   config.ServerConfig
	Handlers *Handlers
	Health   map[string]HealthChecker
	Log      logger.Logger
}

// NewMux registers all routes and returns the wrapped handler.
func NewMux(cfg Config) http.Handler {
	mux := http.NewServeMux()
	h := cfg.Handlers

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		checks := map[string]string{}
		for name, check := range cfg.Health {
			if err := check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				checks[name] = err.Error()
			} else {
				checks[name] = "ok"
			}
		}
		writeJSON(w, status, map[string]interface{}{
			"status": http.StatusText(status),
			"checks": checks,
		})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// --- Catalog ---
	mux.HandleFunc("GET /v1/catalog/cities", h.ListCities)
	mux.HandleFunc("GET /v1/catalog/cities/{city}/districts", h.ListDistricts)
	mux.HandleFunc("GET /v1/catalog/cities/{city}/districts/{district}/neighborhoods", h.ListNeighborhoods)
	mux.HandleFunc("GET /v1/catalog/neighborhoods/{neighborhood}/villages", h.ListVillages)
	mux.HandleFunc("GET /v1/catalog/categories", h.ListMajorCategories)
	mux.HandleFunc("GET /v1/catalog/categories/{major}", h.ListMinorCategories)

	// --- Loan sessions ---
	mux.HandleFunc("GET /v1/sessions/{sid}", h.GetSession)
	mux.HandleFunc("PUT /v1/sessions/{sid}/location", h.SetLocation)
	mux.HandleFunc("POST /v1/sessions/{sid}/properties", h.AddProperty)
	mux.HandleFunc("PATCH /v1/sessions/{sid}/properties/{id}", h.UpdateProperty)
	mux.HandleFunc("DELETE /v1/sessions/{sid}/properties/{id}", h.RemoveProperty)
	mux.HandleFunc("POST /v1/sessions/{sid}/selection", h.SelectProperty)
	mux.HandleFunc("DELETE /v1/sessions/{sid}/selection", h.ClearSelection)
	mux.HandleFunc("PUT /v1/sessions/{sid}/rates", h.SetRates)
	mux.HandleFunc("POST /v1/sessions/{sid}/rentals", h.AddRental)
	mux.HandleFunc("DELETE /v1/sessions/{sid}/rentals/{id}", h.RemoveRental)

	// --- Widgets ---
	mux.HandleFunc("GET /v1/widgets/{sid}/todos", h.GetTodos)
	mux.HandleFunc("PUT /v1/widgets/{sid}/todos", h.PutTodos)
	mux.HandleFunc("GET /v1/widgets/{sid}/schedules", h.GetSchedules)
	mux.HandleFunc("PUT /v1/widgets/{sid}/schedules", h.PutSchedules)
	mux.HandleFunc("GET /v1/widgets/{sid}/news", h.GetNews)
	mux.HandleFunc("PUT /v1/widgets/{sid}/news", h.PutNews)

	// --- AI / archive / admin ---
	mux.HandleFunc("POST /v1/consult", h.Consult)
	mux.HandleFunc("POST /v1/news/refresh", h.RefreshNews)
	mux.HandleFunc("POST /v1/admin/unlock", h.AdminUnlock)
	mux.HandleFunc("PUT /v1/admin/context", h.PutAdminContext)
	mux.HandleFunc("GET /v1/archive/search", h.SearchArchive)

	return Recovery(cfg.Log, Logging(cfg.Log, mux))
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      NewMux(cfg),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	cfg.Log.Info("http server listening", map[string]interface{}{"addr": addr})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
