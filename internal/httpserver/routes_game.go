// apps/go-server/internal/httpserver/routes_game.go
//
// HTTP routes for playing a game.
//   - POST /game/new            → start a game, returns gameId + play token
//   - GET  /game/{id}           → current board
//   - POST /game/{id}/select    → flip a card
//   - POST /game/{id}/resolve   → turn a mismatched pair face down
//   - POST /game/{id}/reset     → play again (same token)
//
// All /game/{id} routes require the play token issued by /game/new.
// Operations on one game are serialized by the table mutex; the engine itself
// is single-threaded. A won game records its score on the leaderboard from
// inside the engine.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/memorypairs/apps/go-server/internal/game"
	"github.com/robalobadob/memorypairs/apps/go-server/internal/store"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Use(s.requirePlayToken)
		r.Get("/", s.handleGetGame)
		r.Post("/select", s.handleSelect)
		r.Post("/resolve", s.handleResolve)
		r.Post("/reset", s.handleReset)
	})
}

// gameView is the board snapshot plus the client pacing hints.
type gameView struct {
	game.SessionView
	MismatchDelayMs int64 `json:"mismatchDelayMs"`
	WinDelayMs      int64 `json:"winDelayMs"`
}

func (s *Server) view(sess *game.Session) gameView {
	return gameView{
		SessionView:     sess.View(),
		MismatchDelayMs: s.opts.MismatchDelay.Milliseconds(),
		WinDelayMs:      s.opts.WinDelay.Milliseconds(),
	}
}

// -----------------------------------------------------------------------------
// /game/new

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Game      gameView  `json:"game"`
}

// handleNewGame validates the player name and difficulty, deals a board and
// registers it under a fresh game ID.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if !game.IsValidName(req.Name) {
		http.Error(w, `{"error":"invalid_name"}`, http.StatusBadRequest)
		return
	}
	d, err := game.ParseDifficulty(req.Difficulty)
	if err != nil {
		http.Error(w, `{"error":"unknown_difficulty"}`, http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	events := &game.EventLog{}
	sess, err := game.New(req.Name, d,
		game.WithAlphabet(s.opts.Alphabet),
		game.WithObserver(events),
		game.WithRecorder(s.board),
		game.WithLogger(s.log.With().Str("gameId", id).Logger()),
	)
	if err != nil {
		s.log.Error().Err(err).Str("difficulty", string(d)).Msg("deal board")
		http.Error(w, `{"error":"configuration"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.signPlayToken(id, sess.Name())
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}

	t := &store.Table{ID: id, Session: sess, Events: events, LastSeen: time.Now()}
	if err := s.store.Save(r.Context(), t); err != nil {
		s.log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	s.log.Info().Str("gameId", id).Str("player", sess.Name()).Str("difficulty", string(d)).Msg("game started")

	_ = json.NewEncoder(w).Encode(newGameRes{GameID: id, Token: tok, ExpiresAt: exp, Game: s.view(sess)})
}

// table loads the game whose ID was verified by requirePlayToken.
func (s *Server) table(w http.ResponseWriter, r *http.Request) (*store.Table, bool) {
	id, _ := r.Context().Value(ctxGameKey{}).(string)
	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return t, true
}

// -----------------------------------------------------------------------------
// /game/{id}

type gameRes struct {
	Game gameView `json:"game"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	t.Mu.Lock()
	res := gameRes{Game: s.view(t.Session)}
	t.Touch()
	t.Mu.Unlock()
	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /game/{id}/select

type selectReq struct {
	CardID *int `json:"cardId"`
}
type selectRes struct {
	Outcome game.Outcome `json:"outcome"`
	Events  []game.Event `json:"events"`
	Game    gameView     `json:"game"`
}

// handleSelect flips one card. Ignored clicks (locked board, matched card,
// same card twice) succeed with outcome "ignored" and no events.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CardID == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	t, ok := s.table(w, r)
	if !ok {
		return
	}

	t.Mu.Lock()
	outcome, err := t.Session.SelectCard(r.Context(), *req.CardID)
	if err != nil {
		t.Mu.Unlock()
		if errors.Is(err, game.ErrNoSuchCard) {
			http.Error(w, `{"error":"no_such_card"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"error":"select_failed"}`, http.StatusInternalServerError)
		return
	}
	res := selectRes{Outcome: outcome, Events: t.Events.Drain(), Game: s.view(t.Session)}
	t.Touch()
	t.Mu.Unlock()

	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /game/{id}/resolve

type resolveRes struct {
	Resolved bool         `json:"resolved"`
	Events   []game.Event `json:"events"`
	Game     gameView     `json:"game"`
}

// handleResolve hides a pending mismatched pair. The client calls it after
// mismatchDelayMs; calling it with nothing pending is a no-op.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	t.Mu.Lock()
	resolved := t.Session.ResolveMismatch()
	res := resolveRes{Resolved: resolved, Events: t.Events.Drain(), Game: s.view(t.Session)}
	t.Touch()
	t.Mu.Unlock()

	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /game/{id}/reset

// resetReq carries the next game's settings; an empty name keeps the current player.
type resetReq struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
}

// handleReset deals a new board on the same game ID.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	d, err := game.ParseDifficulty(req.Difficulty)
	if err != nil {
		http.Error(w, `{"error":"unknown_difficulty"}`, http.StatusBadRequest)
		return
	}
	t, ok := s.table(w, r)
	if !ok {
		return
	}

	t.Mu.Lock()
	name := req.Name
	if strings.TrimSpace(name) == "" {
		name = t.Session.Name()
	}
	err = t.Session.Reset(name, d)
	if err != nil {
		t.Mu.Unlock()
		if errors.Is(err, game.ErrInvalidName) {
			http.Error(w, `{"error":"invalid_name"}`, http.StatusBadRequest)
			return
		}
		s.log.Error().Err(err).Msg("reset game")
		http.Error(w, `{"error":"configuration"}`, http.StatusInternalServerError)
		return
	}
	t.Events.Drain()
	res := gameRes{Game: s.view(t.Session)}
	t.Touch()
	t.Mu.Unlock()

	_ = json.NewEncoder(w).Encode(res)
}
