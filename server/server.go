// Package server exposes a game session over HTTP for the browser front-end.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/younginvestor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config holds server configuration.
type Config struct {
	Addr           string
	Log            zerolog.Logger
	Game           *younginvestor.Game
	AllowedOrigins []string
	DevMode        bool
}

// Server serves one game. Every handler holds mu while it touches the game,
// so game subscribers run under mu too.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	hub    *hub

	mu   sync.Mutex
	game *younginvestor.Game
}

// New creates a server for cfg.Game.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		game:   cfg.Game,
	}
	s.hub = newHub(s.log, cfg.AllowedOrigins)
	s.game.Subscribe(s.hub.broadcast)

	s.setupMiddleware(cfg.AllowedOrigins, cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware(origins []string, devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
		Debug:          devMode,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/player", s.handlePlayer)
		r.Post("/reset", s.handleReset)

		r.Route("/rounds", func(r chi.Router) {
			r.Post("/complete", s.handleCompleteRound)
			r.Post("/wait", s.handleEndWaiting)
			r.Get("/{round}", s.handleRound)
			r.Get("/{round}/quote/{instrument}", s.handleQuote)
		})
		r.Post("/trade/{side}", s.handleTrade)

		r.Post("/progress/{event}", s.handleProgress)
		r.Get("/milestones", s.handleMilestones)
		r.Post("/shop/{item}", s.handleShop)

		r.Get("/flow", s.handleFlow)
		r.Post("/flow/next", s.handleFlowNext)
		r.Post("/flow/previous", s.handleFlowPrevious)

		r.Get("/lessons/{id}", s.handleLesson)
		r.Get("/quizzes/{name}", s.handleQuiz)

		r.Get("/ws", s.hub.handle(s.currentSnapshot))
	})
}

// ServeHTTP lets the server be mounted or tested without listening.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown closes the websocket streams then stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	s.hub.close()
	return s.server.Shutdown(ctx)
}

// withGame runs fn with exclusive access to the game.
func (s *Server) withGame(fn func(g *younginvestor.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

func (s *Server) currentSnapshot() younginvestor.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
