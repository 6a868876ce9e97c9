package routes

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/services"
)

const adminPassword = "correct horse"

type testServer struct {
	*httptest.Server
	router *chi.Mux
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store := repositories.NewMemoryStore()
	hub := brackets.NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	authService := services.NewAuthService(string(hash), "test-secret")
	standingsService := services.NewStandingsService(store.Players(), store.Matches())
	adminService := services.NewAdminService(store, store.Players(), store.Matches(), standingsService, nil, hub, logger)

	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Player:    handlers.NewPlayerHandler(services.NewPlayerService(store.Players(), hub, logger)),
		Match:     handlers.NewMatchHandler(services.NewMatchService(store.Players(), store.Matches(), standingsService, hub, logger), adminService),
		Standings: handlers.NewStandingsHandler(standingsService, services.NewPairingService(standingsService, brackets.NewSwissGenerator(), logger)),
		Admin:     handlers.NewAdminHandler(adminService),
		WebSocket: handlers.NewWebSocketHandler(hub, []string{"*"}, logger),
	}, Options{
		AllowedOrigins: []string{"*"},
		TokenParser:    authService,
		Logger:         logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	ts := &testServer{Server: srv, router: router}
	var login struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	resp := ts.do(t, http.MethodPost, "/auth/login", `{"password":"`+adminPassword+`"}`, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), login.ExpiresAt, time.Minute)
	ts.token = login.Token
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string, auth bool) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.do(t, http.MethodPost, "/auth/login", `{"password":"nope"}`, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, c := range []struct{ method, path, body string }{
		{http.MethodPost, "/players", `{"name":"A"}`},
		{http.MethodPost, "/matches", `{"winner_id":1,"loser_id":2}`},
		{http.MethodDelete, "/matches", ""},
		{http.MethodPost, "/admin/reset", ""},
		{http.MethodPost, "/admin/export", ""},
	} {
		resp := ts.do(t, c.method, c.path, c.body, false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", c.method, c.path)
	}
}

func TestTournamentFlow(t *testing.T) {
	ts := newTestServer(t)

	for _, name := range []string{"Ann", "Bob", "Cid", "Dee"} {
		resp := ts.do(t, http.MethodPost, "/players", `{"name":"`+name+`"}`, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var count struct {
		Count int `json:"count"`
	}
	decode(t, ts.do(t, http.MethodGet, "/players/count", "", false), &count)
	assert.Equal(t, 4, count.Count)

	resp := ts.do(t, http.MethodPost, "/matches", `{"winner_id":1,"loser_id":2}`, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var check struct {
		Played bool `json:"played"`
	}
	decode(t, ts.do(t, http.MethodGet, "/matches/check?player1=2&player2=1", "", false), &check)
	assert.True(t, check.Played)

	var standings struct {
		Standings []struct {
			ID      int `json:"id"`
			Wins    int `json:"wins"`
			Matches int `json:"matches"`
		} `json:"standings"`
	}
	decode(t, ts.do(t, http.MethodGet, "/standings", "", false), &standings)
	require.Len(t, standings.Standings, 4)
	assert.Equal(t, 1, standings.Standings[0].ID)
	assert.Equal(t, 1, standings.Standings[0].Wins)

	var round struct {
		Pairings []struct {
			ID1 int `json:"id1"`
			ID2 int `json:"id2"`
		} `json:"pairings"`
		Unpaired  []json.RawMessage `json:"unpaired"`
		Completed bool              `json:"completed"`
	}
	decode(t, ts.do(t, http.MethodGet, "/pairings", "", false), &round)
	require.Len(t, round.Pairings, 2)
	// Ranking is 1,2,3,4 and 1 has already met 2.
	assert.Equal(t, 1, round.Pairings[0].ID1)
	assert.Equal(t, 3, round.Pairings[0].ID2)
	assert.Equal(t, 2, round.Pairings[1].ID1)
	assert.Equal(t, 4, round.Pairings[1].ID2)
	assert.Empty(t, round.Unpaired)
	assert.True(t, round.Completed)

	resp = ts.do(t, http.MethodPost, "/admin/reset", "", true)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	decode(t, ts.do(t, http.MethodGet, "/players/count", "", false), &count)
	assert.Zero(t, count.Count)
}

func TestReportMatchErrors(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.do(t, http.MethodPost, "/players", `{"name":"Ann"}`, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/matches", `{"winner_id":1,"loser_id":1}`, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/matches", `{"winner_id":1,"loser_id":7}`, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/matches", `{"winner":1}`, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/matches/check?player1=1", "", false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportDisabled(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.do(t, http.MethodPost, "/admin/export", "", true)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestHealthAndDocs(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/healthz", "", false).StatusCode)

	resp := ts.do(t, http.MethodGet, "/swagger/doc.json", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]interface{}
	decode(t, resp, &doc)
	assert.Equal(t, "2.0", doc["swagger"])
}

func TestOpenAPIDocCoversEveryRoute(t *testing.T) {
	ts := newTestServer(t)

	var doc struct {
		Paths map[string]map[string]struct {
			Security []map[string][]string `json:"security"`
		} `json:"paths"`
	}
	resp := ts.do(t, http.MethodGet, "/swagger/doc.json", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &doc)

	walked := 0
	err := chi.Walk(ts.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if strings.HasPrefix(route, "/swagger/") {
			return nil
		}
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		walked++

		op, ok := doc.Paths[route][strings.ToLower(method)]
		if !assert.True(t, ok, "%s %s is not documented", method, route) {
			return nil
		}
		if len(op.Security) == 0 {
			return nil
		}
		assert.Contains(t, op.Security[0], "BearerAuth", "%s %s", method, route)
		unauth := ts.do(t, method, route, "", false)
		assert.Equal(t, http.StatusUnauthorized, unauth.StatusCode, "%s %s is documented as protected", method, route)
		return nil
	})
	require.NoError(t, err)

	documented := 0
	for _, ops := range doc.Paths {
		documented += len(ops)
	}
	assert.Equal(t, documented, walked, "documented operations that no route serves")
}
