// Package server hosts the registration form over HTTP: a server-rendered
// page with form posts, JSON endpoints and a WebSocket event channel.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/jsonview"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
)

const (
	tracerName    = "github.com/goliatone/go-regform/pkg/server"
	sweepInterval = time.Minute
	assetsPrefix  = "/assets/"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithContract overrides the embedded field contract.
func WithContract(c *contract.Contract) Option {
	return func(s *Server) {
		if c != nil {
			s.contract = c
		}
	}
}

// WithPrometheusRegistry registers metrics on reg instead of a private
// registry.
func WithPrometheusRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.promRegistry = reg
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithRenderers replaces the page renderers. The first registered renderer
// answers requests without a matching Accept header.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// Server wires sessions, renderers and observability into an http.Handler.
type Server struct {
	cfg          config.Config
	policy       validation.Policy
	logger       *slog.Logger
	contract     *contract.Contract
	renderers    *render.Registry
	theme        *theme.RendererConfig
	sessions     *SessionStore
	metrics      *metrics
	promRegistry *prometheus.Registry
	tracer       trace.Tracer
	limiter      *clientLimiter
	upgrader     websocket.Upgrader

	connsMu sync.Mutex
	conns   map[*websocket.Conn]struct{}

	handler http.Handler
}

// New validates cfg and builds a Server.
func New(cfg config.Config, options ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := cfg.ResolvePolicy()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		policy: policy,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
		theme:  cfg.RendererTheme(),
		conns:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.contract == nil {
		c, err := contract.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("server: load contract: %w", err)
		}
		s.contract = c
	}
	if s.renderers == nil {
		s.renderers, err = defaultRenderers()
		if err != nil {
			return nil, err
		}
	}
	if cfg.RateLimit.Enabled {
		s.limiter = newClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	s.metrics = newMetrics(s.promRegistry)
	s.sessions = NewSessionStore(cfg.SessionTTL, s.newController, WithMaxSessions(cfg.MaxSessions))
	s.handler = s.routes()
	return s, nil
}

func defaultRenderers() (*render.Registry, error) {
	page, err := vanilla.New(vanilla.WithAssetBase(assetsPrefix))
	if err != nil {
		return nil, fmt.Errorf("server: build html renderer: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(page); err != nil {
		return nil, err
	}
	if err := registry.Register(jsonview.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

func (s *Server) newController(notifier form.Notifier) (*form.Controller, error) {
	return form.NewController(
		form.WithPolicy(s.policy),
		form.WithLogger(s.logger),
		form.WithNotifier(form.NotifierFunc(func(ctx context.Context, notice form.Notice) error {
			s.logger.InfoContext(ctx, "form notice", "title", notice.Title, "message", notice.Message)
			return notifier.Notify(ctx, notice)
		})),
	)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions exposes the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Policy reports the validation policy every session uses.
func (s *Server) Policy() validation.Policy {
	return s.policy
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	r.Get("/openapi.yaml", s.handleOpenAPI)
	r.Handle(assetsPrefix+"*", http.StripPrefix(assetsPrefix, http.FileServer(http.FS(vanilla.AssetsFS()))))

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Use(s.withSession)

		r.Get("/", s.handleIndex)
		r.Get("/state", s.handleState)
		r.Post("/submit", s.handleSubmit)
		if path := s.contract.Path(); path != "" && path != "/submit" {
			r.Post(path, s.handleSubmit)
		}
		r.Post("/reset", s.handleReset)
		r.Post("/fields/{field}", s.handleField)
		r.Get("/ws", s.handleWebSocket)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout. Idle sessions and rate-limit buckets are swept in the
// background.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeSockets)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.sweep(ctx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr, "policy", s.policy.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if removed := s.sessions.Sweep(); removed > 0 {
				s.logger.Debug("expired sessions", "count", removed)
			}
			s.metrics.sessions.Set(float64(s.sessions.Len()))
			if s.limiter != nil {
				s.limiter.sweep()
			}
		case <-ctx.Done():
			return
		}
	}
}
