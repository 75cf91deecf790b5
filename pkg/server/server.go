// Package server exposes sessions over HTTP.
//
// Each client creates a session, posts actions to it and fetches rendered
// frames. Actions use the same JSON shape as script steps:
//
//	POST /sessions                          create a session
//	DELETE /sessions/{id}                   close it
//	POST /sessions/{id}/actions             apply one action
//	GET  /sessions/{id}/messages            the message log
//	GET  /sessions/{id}/frames/{structure}  the structure as SVG
//	GET  /sessions/{id}/graph?format=dot    the graph as DOT, SVG, PNG or PDF
//
// Sessions are not safe for concurrent use, so the server applies requests
// one at a time.
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/observability"
	"github.com/matzehuels/structviz/pkg/render"
	"github.com/matzehuels/structviz/pkg/render/nodelink"
	"github.com/matzehuels/structviz/pkg/session"
)

// CleanupInterval is how often idle sessions are swept.
const CleanupInterval = time.Minute

// Server serves sessions backed by one module.
type Server struct {
	module      backend.Module
	store       session.Store
	renderer    *render.Orchestrator
	exporter    *nodelink.Exporter
	logger      *log.Logger
	sessionOpts []session.Option

	mu     sync.Mutex
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithStore replaces the default in-memory session store.
func WithStore(st session.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithSessionOptions sets options applied to every new session.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) { s.sessionOpts = append(s.sessionOpts, opts...) }
}

// New creates a server. Nil renderer, exporter and logger get uncached
// defaults and a discarding logger.
func New(m backend.Module, renderer *render.Orchestrator, exporter *nodelink.Exporter, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if renderer == nil {
		renderer = render.New(nil, nil, logger)
	}
	if exporter == nil {
		exporter = nodelink.NewExporter(nil, nil)
	}
	s := &Server{
		module:   m,
		renderer: renderer,
		exporter: exporter,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = session.NewMemoryStore(session.DefaultIdleTTL)
	}
	s.sessionOpts = append([]session.Option{session.WithLogger(logger)}, s.sessionOpts...)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Post("/sessions", s.handleCreate)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(s.withSession)
		r.Delete("/", s.handleDelete)
		r.Get("/messages", s.handleMessages)
		r.Post("/actions", s.handleAction)
		r.Get("/frames/{structure}", s.handleFrame)
		r.Get("/graph", s.handleGraph)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Idle sessions are swept every [CleanupInterval].
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			}
			s.mu.Unlock()
		}
	}
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type ctxKey struct{}

// withSession resolves {id} and holds the server lock for the rest of the
// request.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		s.mu.Lock()
		defer s.mu.Unlock()

		sess, err := s.store.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if sess == nil {
			writeError(w, errors.New(errors.ErrCodeNotFound, "session %q not found", id))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(ctxKey{}).(*session.Session)
}
