package httpserver

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ItamarSasson/queens-game-backend/internal/history"
	"github.com/ItamarSasson/queens-game-backend/internal/puzzle"
	"github.com/ItamarSasson/queens-game-backend/internal/session"
)

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()
	hist, err := history.Open()
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { hist.Close() })

	factory := puzzle.NewFactory(rand.New(rand.NewSource(1)))
	mgr := session.NewManager(session.RelayFunc(func(session.Event) {}), factory, session.Config{
		NewRoomID: func() string { return "room-test" },
	})
	return New(mgr, hist, func(w http.ResponseWriter, r *http.Request) {}), mgr
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body["ok"] != true {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRoomSnapshotRoute(t *testing.T) {
	srv, mgr := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown room: status %d, want 404", rec.Code)
	}

	mgr.CreateRoom("p1", "Alice")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/room-test", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var snap session.RoomSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if snap.RoomID != "room-test" || len(snap.Players) != 1 || snap.Players[0].PlayerName != "Alice" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestStatsRoutesEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/stats/recent", "/stats/players"} {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d, want 200", path, rec.Code)
		}
		if got := rec.Body.String(); got != "[]\n" {
			t.Fatalf("%s: body %q, want empty array", path, got)
		}
	}
}
