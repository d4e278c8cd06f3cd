package dashboard

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"

	"github.com/andreiashu/geodash"
)

// Config contains HTTP server settings.
type Config struct {
	Addr            string        // Listen address (default: ":8080")
	ReadTimeout     time.Duration // default: 15s
	WriteTimeout    time.Duration // default: 15s
	ShutdownTimeout time.Duration // default: 10s
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server serves the dashboard page for a loaded Dashboard.
type Server struct {
	dash       *geodash.Dashboard
	config     Config
	logger     *slog.Logger
	router     *mux.Router
	httpServer *http.Server
}

// NewServer creates a Server for d. A nil logger uses slog.Default().
func NewServer(d *geodash.Dashboard, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		dash:   d,
		config: cfg,
		logger: logger,
	}
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Use(s.recovery, s.requestLogging)
}

// Handler returns the HTTP handler serving the dashboard.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard: listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			return
		}
		errc <- nil
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("dashboard: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := s.dash.Normalize(geodash.Selection{
		State:    q.Get("state"),
		District: q.Get("district"),
	})

	page, err := BuildPage(s.dash, sel)
	status := http.StatusOK
	if err != nil {
		var serr *geodash.SelectionError
		if !errors.As(err, &serr) || page == nil {
			s.logger.Error("dashboard: building page", "state", sel.State, "district", sel.District, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		s.logger.Warn("dashboard: selection failed", "state", sel.State, "district", sel.District, "error", err)
		status = http.StatusUnprocessableEntity
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		s.logger.Error("dashboard: rendering page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.logger.Info("dashboard: request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", rw.status,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error("dashboard: panic recovered", "panic", v, "stack", string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
