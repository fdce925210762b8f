// Package dashboard serves the interactive data-quality dashboard over HTTP.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dbsmedya/flightdq/internal/logger"
	"github.com/dbsmedya/flightdq/internal/report"
	"github.com/dbsmedya/flightdq/internal/table"
)

//go:embed templates/*.html
var templateFS embed.FS

// shutdownTimeout bounds how long in-flight requests may run after a stop signal.
const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	TableName  string
	Analysis   report.Options
	Limits     report.Limits
	ReportPath string
	Trigger    Trigger
}

// Server renders the analyses of one loaded table. The table is read once at
// start; every request derives a filtered copy and re-runs the analyses on it.
type Server struct {
	router    *chi.Mux
	table     *table.Table
	opts      Options
	templates *template.Template
	logger    *logger.Logger
}

// New creates a dashboard for t.
func New(t *table.Table, opts Options, log *logger.Logger) (*Server, error) {
	if t == nil {
		return nil, errors.New("table is nil")
	}
	if log == nil {
		log = logger.NewNop()
	}

	funcMap := template.FuncMap{
		"percent": func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
		"num": func(f float64) string {
			if f == math.Trunc(f) {
				return strconv.FormatFloat(f, 'f', 0, 64)
			}
			return strconv.FormatFloat(f, 'f', 2, 64)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		table:     t,
		opts:      opts,
		templates: templates,
		logger:    log,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Handler returns the HTTP handler of the dashboard.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/report", s.handleReport)
	s.router.Post("/report", s.handleGenerateReport)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// requestLogger logs each request through zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debugw("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Dashboard listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dashboard server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("dashboard shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Errorf("Template %s failed: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
