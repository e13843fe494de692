package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/weedbox/holdem"
	"github.com/weedbox/holdem/equity"
)

type Opt func(*Server)

// Server exposes the equity tooling and the table manager over HTTP.
type Server struct {
	manager    holdem.Manager
	preflop    *equity.PreflopTable
	iterations int
	workers    int
	logger     zerolog.Logger
}

func WithPreflopTable(table *equity.PreflopTable) Opt {
	return func(s *Server) {
		s.preflop = table
	}
}

func WithIterations(iterations int) Opt {
	return func(s *Server) {
		s.iterations = iterations
	}
}

func WithWorkers(workers int) Opt {
	return func(s *Server) {
		s.workers = workers
	}
}

func WithLogger(logger zerolog.Logger) Opt {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(manager holdem.Manager, opts ...Opt) *Server {
	s := &Server{
		manager:    manager,
		iterations: equity.DefaultIterations,
		workers:    4,
		logger:     log.Logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Post("/equity", s.handleEquity)
	r.Post("/equity/batch", s.handleEquityBatch)
	r.Post("/evaluate", s.handleEvaluate)
	r.Post("/ranges/parse", s.handleParseRange)

	r.Route("/games", func(r chi.Router) {
		r.Get("/", s.handleListGames)
		r.Post("/", s.handleCreateGame)

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Delete("/", s.handleCloseGame)
			r.Post("/players", s.handleAddPlayers)
			r.Delete("/players/{playerID}", s.handleLeave)
			r.Post("/players/{playerID}/disconnect", s.handleDisconnect)
			r.Post("/players/{playerID}/reconnect", s.handleReconnect)
			r.Post("/seat-requests", s.handleRequestSeat)
			r.Post("/spectators", s.handleAddSpectator)
			r.Post("/actions", s.handleAction)
			r.Post("/admin", s.handleAdmin)
			r.Post("/ready", s.handleReady)
		})
	})

	return r
}
