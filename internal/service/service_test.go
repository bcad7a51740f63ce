package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alleytab/alleytab/internal/auth"
	"github.com/alleytab/alleytab/internal/middleware"
	"github.com/alleytab/alleytab/internal/models"
	"github.com/alleytab/alleytab/internal/storage/sqlite"
)

// testClient drives the assembled HTTP stack the way main wires it:
// auth routes public, everything else behind RequireAuth.
type testClient struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewJWTManager("test-secret", time.Hour)
	authn := auth.NewPasswordAuthenticator(store)

	apiMux := http.NewServeMux()
	NewRosterService(store).Register(apiMux)
	NewGameService(store).Register(apiMux)
	NewStatsService(store).Register(apiMux)
	NewLedgerService(store).Register(apiMux)

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.RequireAuth(tokens, apiMux))
	NewAuthService(authn, tokens).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c := &testClient{t: t, server: server}
	var resp struct {
		Token string `json:"token"`
	}
	c.do("POST", "/api/auth/register", map[string]string{
		"name": "Captain", "email": "captain@example.com", "password": "longenough",
	}, http.StatusCreated, &resp)
	c.token = resp.Token
	return c
}

// do sends a JSON request, asserts the status, and decodes the body.
func (c *testClient) do(method, path string, body interface{}, wantStatus int, out interface{}) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode request: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	if err != nil {
		c.t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var msg json.RawMessage
		json.NewDecoder(resp.Body).Decode(&msg)
		c.t.Fatalf("%s %s: status %d, want %d (body: %s)", method, path, resp.StatusCode, wantStatus, msg)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
}

func (c *testClient) createPlayer(name string) models.Player {
	c.t.Helper()
	var p models.Player
	c.do("POST", "/api/players", map[string]string{"name": name}, http.StatusCreated, &p)
	return p
}

func TestAuthFlow(t *testing.T) {
	c := newTestClient(t)

	t.Run("login works", func(t *testing.T) {
		var resp struct {
			Token string `json:"token"`
		}
		c.do("POST", "/api/auth/login", map[string]string{
			"email": "captain@example.com", "password": "longenough",
		}, http.StatusOK, &resp)
		if resp.Token == "" {
			t.Error("login returned no token")
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		c.do("POST", "/api/auth/login", map[string]string{
			"email": "captain@example.com", "password": "wrong",
		}, http.StatusUnauthorized, nil)
	})

	t.Run("api requires token", func(t *testing.T) {
		anon := &testClient{t: t, server: c.server}
		anon.do("GET", "/api/players", nil, http.StatusUnauthorized, nil)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		c.do("POST", "/api/auth/register", map[string]string{
			"name": "Again", "email": "captain@example.com", "password": "longenough",
		}, http.StatusConflict, nil)
	})
}

func TestGameSubmission(t *testing.T) {
	c := newTestClient(t)
	sam := c.createPlayer("Sam")
	robin := c.createPlayer("Robin")

	t.Run("session submit", func(t *testing.T) {
		var resp struct {
			SessionID string              `json:"session_id"`
			Games     []models.GameRecord `json:"games"`
		}
		c.do("POST", "/api/games", map[string]interface{}{
			"date_played": 1700000000,
			"games": []map[string]interface{}{
				{"player_id": sam.ID, "score": 187, "strikes": 4, "spares": 3, "tenth_frame": "X9/"},
				{"player_id": robin.ID, "score": 203, "strikes": 6, "spares": 2, "tenth_frame": "XXX"},
			},
		}, http.StatusCreated, &resp)

		if resp.SessionID == "" || len(resp.Games) != 2 {
			t.Fatalf("submit response = %+v", resp)
		}
		if resp.Games[0].SessionID != resp.Games[1].SessionID {
			t.Error("games in one submission should share a session")
		}
	})

	t.Run("invalid notation rejected before persistence", func(t *testing.T) {
		c.do("POST", "/api/games", map[string]interface{}{
			"games": []map[string]interface{}{
				{"player_id": sam.ID, "score": 100, "strikes": 0, "spares": 0, "tenth_frame": "X/"},
			},
		}, http.StatusBadRequest, nil)

		var games []models.GameRecord
		c.do("GET", "/api/games?player_id="+sam.ID, nil, http.StatusOK, &games)
		if len(games) != 1 {
			t.Errorf("got %d games for Sam, want only the valid one", len(games))
		}
	})

	t.Run("incomplete notation rejected", func(t *testing.T) {
		c.do("POST", "/api/games", map[string]interface{}{
			"games": []map[string]interface{}{
				{"player_id": sam.ID, "score": 100, "strikes": 0, "spares": 0, "tenth_frame": "5/"},
			},
		}, http.StatusBadRequest, nil)
	})

	t.Run("impossible counts rejected", func(t *testing.T) {
		c.do("POST", "/api/games", map[string]interface{}{
			"games": []map[string]interface{}{
				{"player_id": sam.ID, "score": 100, "strikes": 6, "spares": 6, "tenth_frame": "--"},
			},
		}, http.StatusBadRequest, nil)
	})

	t.Run("unknown player rejected", func(t *testing.T) {
		c.do("POST", "/api/games", map[string]interface{}{
			"games": []map[string]interface{}{
				{"player_id": "ghost", "score": 100, "strikes": 0, "spares": 0, "tenth_frame": "--"},
			},
		}, http.StatusBadRequest, nil)
	})
}

func TestNotationEndpoint(t *testing.T) {
	c := newTestClient(t)

	tests := []struct {
		notation string
		status   string
		pins     int
	}{
		{"X9/", "valid", 20},
		{"X", "incomplete", 10},
		{"X/", "invalid", 0},
	}
	for _, tt := range tests {
		var resp struct {
			Status  string `json:"status"`
			Derived *struct {
				PinsKnocked int `json:"pins_knocked"`
			} `json:"derived"`
		}
		c.do("POST", "/api/notation/validate", map[string]string{"notation": tt.notation}, http.StatusOK, &resp)
		if resp.Status != tt.status {
			t.Errorf("validate %q: status = %q, want %q", tt.notation, resp.Status, tt.status)
		}
		if tt.status != "invalid" {
			if resp.Derived == nil || resp.Derived.PinsKnocked != tt.pins {
				t.Errorf("validate %q: derived = %+v, want %d pins", tt.notation, resp.Derived, tt.pins)
			}
		} else if resp.Derived != nil {
			t.Errorf("validate %q: unexpected derivation %+v", tt.notation, resp.Derived)
		}
	}
}

func TestStatsEndpoints(t *testing.T) {
	c := newTestClient(t)
	sam := c.createPlayer("Sam")
	robin := c.createPlayer("Robin")

	submit := func(playerID string, score int) {
		c.do("POST", "/api/games", map[string]interface{}{
			"games": []map[string]interface{}{
				{"player_id": playerID, "score": score, "strikes": 0, "spares": 0, "tenth_frame": "--"},
			},
		}, http.StatusCreated, nil)
	}
	submit(sam.ID, 150)
	submit(sam.ID, 210)
	submit(robin.ID, 180)

	t.Run("player stats", func(t *testing.T) {
		var got models.PlayerStats
		c.do("GET", "/api/stats/player?player_id="+sam.ID, nil, http.StatusOK, &got)
		if got.GamesPlayed != 2 || got.AverageScore != 180 {
			t.Errorf("player stats = %+v", got)
		}
		if got.GamesAbove200 != 1 {
			t.Errorf("GamesAbove200 = %d, want 1", got.GamesAbove200)
		}
	})

	t.Run("player with no games has zero stats", func(t *testing.T) {
		empty := c.createPlayer("Newbie")
		var got models.PlayerStats
		c.do("GET", "/api/stats/player?player_id="+empty.ID, nil, http.StatusOK, &got)
		if got.GamesPlayed != 0 || got.AverageScore != 0 {
			t.Errorf("expected zero stats, got %+v", got)
		}
	})

	t.Run("unknown player is 404", func(t *testing.T) {
		c.do("GET", "/api/stats/player?player_id=ghost", nil, http.StatusNotFound, nil)
	})

	t.Run("team stats exclude deactivated players", func(t *testing.T) {
		var before models.TeamStats
		c.do("GET", "/api/stats/team", nil, http.StatusOK, &before)
		if before.GamesPlayed != 3 {
			t.Fatalf("team GamesPlayed = %d, want 3", before.GamesPlayed)
		}

		c.do("POST", "/api/players/deactivate", map[string]string{"player_id": robin.ID}, http.StatusNoContent, nil)

		var after models.TeamStats
		c.do("GET", "/api/stats/team", nil, http.StatusOK, &after)
		if after.GamesPlayed != 2 {
			t.Errorf("team GamesPlayed after deactivation = %d, want 2", after.GamesPlayed)
		}

		// The deactivated player's own history is untouched.
		var robinStats models.PlayerStats
		c.do("GET", "/api/stats/player?player_id="+robin.ID, nil, http.StatusOK, &robinStats)
		if robinStats.GamesPlayed != 1 {
			t.Errorf("deactivated player GamesPlayed = %d, want 1", robinStats.GamesPlayed)
		}
	})
}

func TestLedgerEndpoints(t *testing.T) {
	c := newTestClient(t)
	a := c.createPlayer("A")
	b := c.createPlayer("B")
	cc := c.createPlayer("C")

	var created models.Expense
	c.do("POST", "/api/expenses", map[string]interface{}{
		"description":     "Lane fees",
		"amount":          30,
		"payer_id":        a.ID,
		"participant_ids": []string{a.ID, b.ID, cc.ID},
		"method":          "equal",
	}, http.StatusCreated, &created)
	if created.ID == "" {
		t.Fatal("expense got no ID")
	}

	t.Run("balances", func(t *testing.T) {
		var balances []models.Balance
		c.do("GET", "/api/ledger/balances", nil, http.StatusOK, &balances)
		got := make(map[string]float64)
		for _, bal := range balances {
			got[bal.ParticipantID] = bal.Amount
		}
		want := map[string]float64{a.ID: 20, b.ID: -10, cc.ID: -10}
		for id, amount := range want {
			if diff := got[id] - amount; diff > 0.001 || diff < -0.001 {
				t.Errorf("balance[%s] = %v, want %v", id, got[id], amount)
			}
		}
	})

	t.Run("settlements direct both debtors to the payer", func(t *testing.T) {
		var settlements []models.Settlement
		c.do("GET", "/api/ledger/settlements", nil, http.StatusOK, &settlements)
		if len(settlements) != 2 {
			t.Fatalf("got %d settlements, want 2: %+v", len(settlements), settlements)
		}
		for _, st := range settlements {
			if st.To != a.ID || st.Amount != 10 {
				t.Errorf("settlement = %+v, want 10 to %s", st, a.ID)
			}
		}
	})

	t.Run("replace changes the ledger", func(t *testing.T) {
		c.do("POST", "/api/expenses/replace", map[string]interface{}{
			"id":              created.ID,
			"description":     "Lane fees (corrected)",
			"amount":          20,
			"payer_id":        b.ID,
			"participant_ids": []string{a.ID, b.ID},
			"method":          "equal",
		}, http.StatusOK, nil)

		var balances []models.Balance
		c.do("GET", "/api/ledger/balances", nil, http.StatusOK, &balances)
		got := make(map[string]float64)
		for _, bal := range balances {
			got[bal.ParticipantID] = bal.Amount
		}
		if got[a.ID] != -10 || got[b.ID] != 10 || got[cc.ID] != 0 {
			t.Errorf("balances after replace = %v", got)
		}
	})

	t.Run("delete empties the ledger", func(t *testing.T) {
		c.do("POST", "/api/expenses/delete", map[string]string{"id": created.ID}, http.StatusNoContent, nil)

		var settlements []models.Settlement
		c.do("GET", "/api/ledger/settlements", nil, http.StatusOK, &settlements)
		if len(settlements) != 0 {
			t.Errorf("settlements after delete = %+v, want none", settlements)
		}
	})

	t.Run("invalid expenses rejected", func(t *testing.T) {
		bad := []map[string]interface{}{
			{"amount": -5, "payer_id": a.ID, "participant_ids": []string{a.ID}, "method": "equal"},
			{"amount": 10, "payer_id": "", "participant_ids": []string{a.ID}, "method": "equal"},
			{"amount": 10, "payer_id": a.ID, "participant_ids": []string{}, "method": "equal"},
			{"amount": 10, "payer_id": a.ID, "participant_ids": []string{a.ID}, "method": "vibes"},
			{"amount": 10, "payer_id": a.ID, "participant_ids": []string{a.ID, a.ID}, "method": "equal"},
		}
		for _, body := range bad {
			c.do("POST", "/api/expenses", body, http.StatusBadRequest, nil)
		}
	})
}
