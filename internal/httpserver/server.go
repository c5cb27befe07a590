// internal/httpserver/server.go
//
// HTTP wiring for the Queens duel backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Websocket endpoint: GET /ws (mounted outside the timeout middleware —
//     game connections are long-lived).
//   - Read-only ops surface: GET /rooms/{id}, GET /stats/recent,
//     GET /stats/players.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Everything stateful lives in the session manager and history store;
//     handlers here only read.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/ItamarSasson/queens-game-backend/internal/history"
	"github.com/ItamarSasson/queens-game-backend/internal/session"
)

// Server bundles the router with the session manager and round history.
type Server struct {
	r       *chi.Mux
	manager *session.Manager
	history *history.Store
}

// New constructs a Server, installs middleware, and registers routes.
// wsHandle is the websocket adapter's entry point.
func New(mgr *session.Manager, hist *history.Store, wsHandle http.HandlerFunc) *Server {
	s := &Server{r: chi.NewRouter(), manager: mgr, history: hist}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(corsFromEnv)     // credentials-friendly CORS

	// Long-lived connection; no timeout, no JSON content type.
	s.r.Get("/ws", wsHandle)

	s.r.Group(func(api chi.Router) {
		api.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		api.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		api.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"queens-game","endpoints":["/health","GET /ws","GET /rooms/{id}","GET /stats/recent","GET /stats/players"]}`))
		})
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "rooms": s.manager.RoomCount()})
		})

		api.Get("/rooms/{id}", s.handleRoomSnapshot)
		api.Get("/stats/recent", s.handleRecentRounds)
		api.Get("/stats/players", s.handlePlayerTotals)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ handlers -----------------------------------

// handleRoomSnapshot reports a room's observable state; never the board.
func (s *Server) handleRoomSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.manager.Snapshot(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleRecentRounds(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	rounds, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("query recent rounds")
		http.Error(w, `{"error":"query_failed"}`, http.StatusInternalServerError)
		return
	}
	if rounds == nil {
		rounds = []history.Round{}
	}
	_ = json.NewEncoder(w).Encode(rounds)
}

func (s *Server) handlePlayerTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.history.PlayerTotals(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("query player totals")
		http.Error(w, `{"error":"query_failed"}`, http.StatusInternalServerError)
		return
	}
	if totals == nil {
		totals = []history.PlayerTotal{}
	}
	_ = json.NewEncoder(w).Encode(totals)
}
