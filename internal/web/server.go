package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vbonduro/officepantry/internal/auth"
	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/service"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Auth        *auth.Service
	Consumption *service.ConsumptionService
	Reports     *service.ReportService
	Pricing     *service.PricingService
	Dashboard   *service.DashboardService
}

type Server struct {
	svc    Services
	mux    *http.ServeMux
	logger *slog.Logger
}

func NewServer(svc Services, logger *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		mux:    http.NewServeMux(),
		logger: logger,
	}
	s.registerRoutes()
	return s
}

var (
	reportRoles    = []domain.Role{domain.RoleAdmin, domain.RoleManager}
	vendorRoles    = []domain.Role{domain.RoleVendor, domain.RoleAdmin}
	dashboardRoles = []domain.Role{domain.RoleAdmin}
)

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /auth/password-reset", s.handlePasswordReset)
	s.mux.Handle("GET /auth/me", s.requireAuth(s.handleMe))

	s.mux.Handle("GET /consumption/entries", s.requireAuth(s.handleListEntries))
	s.mux.Handle("POST /consumption/entries", s.requireAuth(s.handleAddEntry))
	s.mux.Handle("POST /consumption/entries/bulk", s.requireAuth(s.handleBulkEntries))
	s.mux.Handle("PUT /consumption/entries/{id}", s.requireAuth(s.handleUpdateEntry))
	s.mux.Handle("DELETE /consumption/entries/{id}", s.requireAuth(s.handleDeleteEntry))
	s.mux.Handle("GET /consumption/stats", s.requireAuth(s.handleStats))
	s.mux.Handle("GET /catalog", s.requireAuth(s.handleCatalog))

	s.mux.Handle("GET /reports", s.requireAuth(s.handleReport, reportRoles...))
	s.mux.Handle("GET /reports/export", s.requireAuth(s.handleReportExport, reportRoles...))

	s.mux.Handle("GET /vendor/products", s.requireAuth(s.handleListProducts, vendorRoles...))
	s.mux.Handle("POST /vendor/products/{id}/price/preview", s.requireAuth(s.handlePreviewPrice, vendorRoles...))
	s.mux.Handle("PUT /vendor/products/{id}/price", s.requireAuth(s.handleUpdatePrice, vendorRoles...))
	s.mux.Handle("POST /vendor/pricing/bulk/preview", s.requireAuth(s.handlePreviewBulk, vendorRoles...))
	s.mux.Handle("POST /vendor/pricing/bulk", s.requireAuth(s.handleApplyBulk, vendorRoles...))
	s.mux.Handle("GET /vendor/price-updates", s.requireAuth(s.handlePriceHistory, vendorRoles...))
	s.mux.Handle("DELETE /vendor/price-updates", s.requireAuth(s.handleClearPriceHistory, vendorRoles...))
	s.mux.Handle("GET /vendor/price-updates/export", s.requireAuth(s.handleExportPriceHistory, vendorRoles...))

	s.mux.Handle("GET /dashboard", s.requireAuth(s.handleDashboard, dashboardRoles...))
	s.mux.Handle("GET /dashboard/trend", s.requireAuth(s.handleTrend, dashboardRoles...))
	s.mux.Handle("POST /dashboard/products/{id}/restock", s.requireAuth(s.handleRestock, dashboardRoles...))
	s.mux.Handle("POST /dashboard/backup", s.requireAuth(s.handleBackup, dashboardRoles...))
	s.mux.Handle("GET /dashboard/backups", s.requireAuth(s.handleListBackups, dashboardRoles...))
	s.mux.Handle("GET /dashboard/backups/{key}", s.requireAuth(s.handleDownloadBackup, dashboardRoles...))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then drains open requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
