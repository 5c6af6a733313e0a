// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the memory-pairs backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/difficulties", "/leaderboard".
//   - Game endpoints: POST /game/new, then token-gated /game/{id}/* (see routes_game.go).
//   - Background pruning of idle games.
//
// Notes:
//   - The browser client is the presentation layer: each game request returns the
//     events the engine emitted plus a fresh board view.
//   - CORS is origin-aware and credentials-enabled.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/robalobadob/memorypairs/apps/go-server/internal/game"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/kv"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/leaderboard"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/store"
)

// Options tunes a Server. Zero values fall back to the defaults below.
type Options struct {
	Alphabet      []string // nil → embedded symbols
	JWTSecret     string
	TokenTTL      time.Duration
	ClientOrigin  string
	MismatchDelay time.Duration
	WinDelay      time.Duration
	Logger        zerolog.Logger
}

func (o *Options) setDefaults() {
	if o.JWTSecret == "" {
		o.JWTSecret = "dev_secret_change_me"
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = 24 * time.Hour
	}
	if o.ClientOrigin == "" {
		o.ClientOrigin = "http://localhost:5173"
	}
	if o.MismatchDelay <= 0 {
		o.MismatchDelay = time.Second
	}
	if o.WinDelay <= 0 {
		o.WinDelay = 500 * time.Millisecond
	}
}

// Server bundles router, active game registry, and leaderboard.
type Server struct {
	r     *chi.Mux
	store store.Store
	board *leaderboard.Board
	opts  Options
	log   zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
// A nil board gets an in-memory leaderboard.
func New(st store.Store, board *leaderboard.Board, opts Options) *Server {
	opts.setDefaults()
	if board == nil {
		board = leaderboard.New(kv.NewMemory())
	}
	s := &Server{r: chi.NewRouter(), store: st, board: board, opts: opts, log: opts.Logger}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(s.accessLog)                     // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"memorypairs-go","endpoints":["/health","/difficulties","/leaderboard","POST /game/new","/game/{id}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/difficulties", s.handleDifficulties)
	s.r.Get("/leaderboard", s.handleLeaderboard)

	s.mountGame(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Handler exposes the router as an http.Handler.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// RunJanitor drops games idle for longer than ttl, checking every ttl/4,
// until ctx is cancelled.
func (s *Server) RunJanitor(ctx context.Context, ttl time.Duration) {
	every := ttl / 4
	if every < time.Second {
		every = time.Second
	}
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			if n := s.store.Prune(ctx, now.Add(-ttl)); n > 0 {
				s.log.Info().Int("pruned", n).Msg("idle games removed")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog logs method, path, status and duration of each request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("http request")
	})
}

// ---------------------------- public lookups -------------------------------

type difficultyRes struct {
	Key     game.Difficulty `json:"key"`
	Pairs   int             `json:"pairs"`
	Columns int             `json:"columns"`
}

// handleDifficulties lists the levels with their board sizes.
func (s *Server) handleDifficulties(w http.ResponseWriter, r *http.Request) {
	out := make([]difficultyRes, 0, 3)
	for _, d := range game.Difficulties() {
		out = append(out, difficultyRes{Key: d, Pairs: d.Pairs(), Columns: d.Columns()})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// lbRes is returned by /leaderboard.
type lbRes struct {
	Top []leaderboard.Entry `json:"top"`
}

// handleLeaderboard returns the persisted top scores, best first.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(lbRes{Top: s.board.TopScores(r.Context())})
}
