package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golazoapp/golazo/internal/api/authz"
	"github.com/golazoapp/golazo/internal/league"
	"github.com/golazoapp/golazo/internal/scorer"
	"github.com/golazoapp/golazo/internal/testutil"
)

// leagueStub serves the handful of league API routes the console touches.
func leagueStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/matches/m1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "m1",
			"status": "P",
			"home_team": map[string]string{
				"id": "th", "name": "Boca Amateurs",
			},
			"away_team": map[string]string{
				"id": "ta", "name": "River Casuals",
			},
		})
	})
	mux.HandleFunc("GET /v1/matches/m1/incidents", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"incidents": []any{}})
	})
	mux.HandleFunc("GET /v1/teams/{id}/roster", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"players": []any{}})
	})
	mux.HandleFunc("POST /v1/matches/m1/start", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "m1",
			"status": "C1",
			"home_team": map[string]string{
				"id": "th", "name": "Boca Amateurs",
			},
			"away_team": map[string]string{
				"id": "ta", "name": "River Casuals",
			},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newConsoleServer(t *testing.T) *httptest.Server {
	t.Helper()
	remote := leagueStub(t)

	database := testutil.NewTestDB(t)
	svc := scorer.NewService(league.NewClient(remote.URL, 0), database, scorer.Config{})
	// InitHandlers only fires once per process; point the package at this
	// test's service directly.
	InitHandlers(svc)
	service = svc
	t.Cleanup(func() {
		for _, id := range svc.MountedMatches() {
			_ = svc.Unmount(context.Background(), id)
		}
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/matches/{id}/mount", HandleMount)
	mux.HandleFunc("GET /api/v1/matches/{id}", HandleScoreboard)
	mux.HandleFunc("GET /api/v1/matches/{id}/clock", HandleClock)
	mux.HandleFunc("POST /api/v1/matches/{id}/start", HandleStartMatch)
	mux.HandleFunc("POST /api/v1/matches/{id}/start-second-half", HandleStartSecondHalf)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && token != "" {
			r = r.WithContext(authz.ContextWithScorer(r.Context(), &authz.Scorer{Token: token}))
		}
		mux.ServeHTTP(w, r)
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHandlersRejectMissingToken(t *testing.T) {
	server := newConsoleServer(t)

	resp := do(t, http.MethodPost, server.URL+"/api/v1/matches/m1/mount", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestMountAndScoreboard(t *testing.T) {
	server := newConsoleServer(t)

	resp := do(t, http.MethodPost, server.URL+"/api/v1/matches/m1/mount", "tok")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mount status = %d, want 200", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, server.URL+"/api/v1/matches/m1", "tok")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scoreboard status = %d, want 200", resp.StatusCode)
	}
	var view scorer.MatchView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.HomeTeam.Name != "Boca Amateurs" {
		t.Errorf("home team = %q", view.HomeTeam.Name)
	}
	if view.Status != "scheduled" {
		t.Errorf("status = %q, want scheduled", view.Status)
	}
}

func TestLifecycleOverHTTP(t *testing.T) {
	server := newConsoleServer(t)

	do(t, http.MethodPost, server.URL+"/api/v1/matches/m1/mount", "tok")

	// Skipping straight to the second half is rejected before the league is
	// called.
	resp := do(t, http.MethodPost, server.URL+"/api/v1/matches/m1/start-second-half", "tok")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("illegal transition status = %d, want 409", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, server.URL+"/api/v1/matches/m1/start", "tok")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start status = %d, want 200", resp.StatusCode)
	}
	var view scorer.MatchView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Status != "first_half" {
		t.Errorf("status = %q, want first_half", view.Status)
	}
	if view.Clock.PhaseLabel != "First half" {
		t.Errorf("phase label = %q", view.Clock.PhaseLabel)
	}
}

func TestScoreboardRequiresMountedSession(t *testing.T) {
	server := newConsoleServer(t)

	resp := do(t, http.MethodGet, server.URL+"/api/v1/matches/m1", "tok")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
