package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
	"github.com/dmitrymomot/intldomain/pkg/health"
)

var (
	ErrNilDB             = errors.New("server: messages db is required")
	ErrUnsupportedLocale = errors.New("server: unsupported locale")
)

// Server routes HTTP requests to a messages DB.
type Server struct {
	db        *domaindb.DB
	logger    *slog.Logger
	router    chi.Router
	checks    health.Checks
	locales   []string
	onClear   []func(context.Context) error
	newID     func() string
	idHeaders []string
	timeout   time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithChecks sets the readiness checks served on /health/ready.
func WithChecks(checks health.Checks) Option {
	return func(s *Server) {
		s.checks = checks
	}
}

// WithLocales sets the locales offered to Accept-Language negotiation.
// The first one is the fallback. Without it, the cached locales are used.
// When set, /locales/{locale} routes answer 404 for any other locale.
// Locales are expected in canonical form, see locale.Normalize.
func WithLocales(locales ...string) Option {
	return func(s *Server) {
		s.locales = locales
	}
}

// WithOnClear adds a hook run by DELETE /cache after the DB is cleared,
// e.g. purging a second-tier cache.
func WithOnClear(fn func(context.Context) error) Option {
	return func(s *Server) {
		if fn != nil {
			s.onClear = append(s.onClear, fn)
		}
	}
}

// WithRequestIDGenerator replaces uuid.NewString.
func WithRequestIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithRequestTimeout bounds request handling. Default: 30 seconds.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New builds the router.
func New(db *domaindb.DB, opts ...Option) (*Server, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	s := &Server{
		db:        db,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:     uuid.NewString,
		idHeaders: DefaultRequestIDHeaders,
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.recoverer)
	r.Use(s.logRequests)
	r.Use(chimw.Timeout(s.timeout))

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(s.checks, health.WithLogger(s.logger)))

	r.Get("/locales", s.handleLocales)
	r.Route("/locales/{locale}", func(r chi.Router) {
		r.Use(s.withLocale)
		r.Post("/preload", s.handlePreload)
		r.Get("/domains/{domain}", s.handleDomain)
		r.Get("/domains/{domain}/messages/{id}", s.handleMessage)
	})
	r.Get("/domains/{domain}/messages/{id}", s.handleNegotiatedMessage)
	r.Delete("/cache", s.handleClear)

	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
