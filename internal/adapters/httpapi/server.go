// Package httpapi exposes the quiz over HTTP: one wizard session per client,
// addressed by an opaque session id.
package httpapi

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"scentquiz/internal/ports"
	"scentquiz/internal/session"
)

// Options configures a Server
type Options struct {
	Deps         session.Deps
	Identity     ports.IdentityProvider
	AuthRequired bool
	SessionTTL   time.Duration
	Logger       *zap.Logger
}

// Server routes HTTP requests to quiz sessions
type Server struct {
	router       chi.Router
	sessions     *session.Manager
	identity     ports.IdentityProvider
	history      ports.HistoryStore
	authRequired bool
	metrics      *Metrics
	validate     *validator.Validate
	logger       *zap.Logger
}

// New builds the server and its routes
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		identity:     opts.Identity,
		authRequired: opts.AuthRequired,
		validate:     newValidator(),
		logger:       logger,
	}
	s.metrics = NewMetrics(func() float64 { return float64(s.sessions.Len()) })

	deps := opts.Deps
	deps.Logger = logger
	deps.Matcher = s.metrics.wrapMatcher(deps.Matcher)
	deps.History = s.metrics.wrapHistory(deps.History)
	s.history = deps.History
	s.sessions = session.NewManager(deps, opts.SessionTTL)

	s.router = s.routes()
	return s
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager, e.g. to run its eviction loop
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Post("/users", s.handleRegister)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/mood", s.handleMood)
			r.Post("/occasion", s.handleOccasion)
			r.Post("/notes", s.handleNotes)
			r.Post("/restart", s.handleRestart)
			r.Get("/history", s.handleHistory)
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		)
	})
}
