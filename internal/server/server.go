// Package server implements the HTTP API: drawing signs, fetching sign
// records, rendering cards, and listing draw history.
package server

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lingqianapp/lingqian/pkg/cache"
	"github.com/lingqianapp/lingqian/pkg/card"
	"github.com/lingqianapp/lingqian/pkg/history"
	"github.com/lingqianapp/lingqian/pkg/i18n"
	"github.com/lingqianapp/lingqian/pkg/sign"
)

// CardRenderer renders cards. The production implementation is
// card.Composer; tests substitute a stub so handler tests need no fonts.
type CardRenderer interface {
	Compose(req card.RenderRequest) (*card.Card, error)
}

// Server wires the sign store, renderer, cache, and history behind a chi
// router.
type Server struct {
	store    *sign.Store
	renderer CardRenderer
	cache    cache.Cache
	keyer    cache.Keyer
	history  history.Store
	logger   *log.Logger
	cacheTTL time.Duration

	mu  sync.Mutex
	rng *rand.Rand

	http *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithRenderer replaces the card renderer.
func WithRenderer(r CardRenderer) Option {
	return func(s *Server) { s.renderer = r }
}

// WithCache sets the card cache and its entry TTL.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithKeyer replaces the cache keyer.
func WithKeyer(k cache.Keyer) Option {
	return func(s *Server) { s.keyer = k }
}

// WithHistory sets the draw history store.
func WithHistory(h history.Store) Option {
	return func(s *Server) { s.history = h }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRand seeds the draw source, for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Server) { s.rng = rng }
}

// New creates a Server around store. Defaults: a real composer, no
// caching, in-memory history, and the default logger.
func New(store *sign.Store, opts ...Option) *Server {
	s := &Server{
		store:    store,
		renderer: card.New(),
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		history:  history.NewMemoryStore(0),
		logger:   log.Default(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/sign/draw", s.handleDraw)
		r.Get("/sign/{id}", s.handleGetSign)
		r.Post("/card", s.handleCard)
		r.Get("/history", s.handleHistory)
	})
	return r
}

// Start begins serving on addr and blocks until the listener fails or
// Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and closes backends.
func (s *Server) Shutdown(ctx context.Context) error {
	var first error
	if s.http != nil {
		first = s.http.Shutdown(ctx)
	}
	if err := s.cache.Close(); err != nil && first == nil {
		first = err
	}
	if err := s.history.Close(ctx); err != nil && first == nil {
		first = err
	}
	return first
}

// draw picks a random sign under the server's lock; rand.Rand is not safe
// for concurrent use.
func (s *Server) draw(lang i18n.Language) (sign.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Draw(lang, s.rng)
}
