package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdem"
	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/classifier"
	"github.com/weedbox/holdem/evaluator"
)

func newTestServer(t *testing.T) (*httptest.Server, holdem.Manager) {
	manager := holdem.NewManager(
		holdem.WithEngineOptions(&holdem.EngineOptions{
			ActionTimeout:    5 * time.Second,
			StreetDelay:      10 * time.Millisecond,
			RunoutDelay:      10 * time.Millisecond,
			ShowdownDelay:    10 * time.Millisecond,
			NextHandDelay:    10 * time.Millisecond,
			ReconnectTimeout: time.Second,
		}),
		holdem.WithManagerLogger(zerolog.Nop()),
	)

	srv := httptest.NewServer(NewServer(manager, WithIterations(1000), WithLogger(zerolog.Nop())).Routes())
	t.Cleanup(func() {
		srv.Close()
		manager.Reset()
	})

	return srv, manager
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, out any) int {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func TestEvaluate(t *testing.T) {
	srv, _ := newTestServer(t)

	var out struct {
		Evaluation struct {
			Rank     int    `json:"rank"`
			Category string `json:"category"`
		} `json:"evaluation"`
		Winners      []int  `json:"winners"`
		PairCategory string `json:"pairCategory"`
		Draw         string `json:"draw"`
	}

	status := do(t, srv, http.MethodPost, "/evaluate", map[string]any{
		"cards": []string{"Ah", "Kh", "Qh", "Jh", "Th", "2c", "3d"},
	}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 7462, out.Evaluation.Rank)

	status = do(t, srv, http.MethodPost, "/evaluate", map[string]any{
		"hands": [][]string{
			{"Ah", "Ad", "2c", "7d", "9s", "Jh", "4c"},
			{"Kh", "Kd", "2c", "7d", "9s", "Jh", "4c"},
		},
	}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []int{0}, out.Winners)

	status = do(t, srv, http.MethodPost, "/evaluate", map[string]any{
		"hole":  []string{"Ah", "Kd"},
		"board": []string{"Ac", "7s", "6s", "5s"},
	}, &out)
	require.Equal(t, http.StatusOK, status)

	holeCards, _ := card.ParseMany([]string{"Ah", "Kd"})
	board, _ := card.ParseMany([]string{"Ac", "7s", "6s", "5s"})
	assert.Equal(t, string(classifier.CategorizePair(holeCards, board)), out.PairCategory)
	assert.Equal(t, string(classifier.DetectDraw(append(holeCards, board...))), out.Draw)
	ev, err := evaluator.EvaluateCards(append(holeCards, board...))
	require.NoError(t, err)
	assert.Equal(t, ev.Rank, out.Evaluation.Rank)

	var failure errorResponse
	status = do(t, srv, http.MethodPost, "/evaluate", map[string]any{"cards": []string{"Ah", "Ah", "2c", "3d", "4s"}}, &failure)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, failure.Error)

	status = do(t, srv, http.MethodPost, "/evaluate", `{"cards": ["Ah"], "extra": 1}`, &failure)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestEquity(t *testing.T) {
	srv, _ := newTestServer(t)

	var out struct {
		Equities   []float64 `json:"equities"`
		Iterations int       `json:"iterations"`
	}

	// two cards to come with fixed hands is enumerated exactly
	status := do(t, srv, http.MethodPost, "/equity", map[string]any{
		"players": []map[string]any{
			{"hand": []string{"Qs", "Qd"}},
			{"hand": []string{"Ah", "Kh"}},
		},
		"board": []string{"2c", "7d", "9s"},
	}, &out)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, out.Equities, 2)
	assert.Equal(t, 990, out.Iterations)
	assert.InDelta(t, 100, out.Equities[0]+out.Equities[1], 1e-6)
	assert.Greater(t, out.Equities[0], out.Equities[1])

	// malformed input yields zeros, never an error
	status = do(t, srv, http.MethodPost, "/equity", map[string]any{
		"players": []map[string]any{{"hand": []string{"Zz", "Qd"}}, {"range": "AA"}},
	}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []float64{0, 0}, out.Equities)

	var batch struct {
		Results []struct {
			Equities []float64 `json:"equities"`
		} `json:"results"`
	}
	status = do(t, srv, http.MethodPost, "/equity/batch", map[string]any{
		"seed": 9,
		"requests": []map[string]any{
			{"players": []map[string]any{{"hand": []string{"As", "Ad"}}, {"range": "KK"}}, "board": []string{"2c", "7d", "9s", "Th"}},
			{"players": []map[string]any{{"range": "QQ+"}, {"range": "AKs"}}, "iterations": 500},
		},
	}, &batch)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, batch.Results, 2)
	for _, r := range batch.Results {
		require.Len(t, r.Equities, 2)
		assert.InDelta(t, 100, r.Equities[0]+r.Equities[1], 1e-6)
	}
}

func TestParseRange(t *testing.T) {
	srv, _ := newTestServer(t)

	var out rangeResponse
	status := do(t, srv, http.MethodPost, "/ranges/parse", rangeRequest{Range: "QQ+,AKs"}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 22, out.Count)
	assert.Len(t, out.Combos, 22)
}

func TestGames(t *testing.T) {
	srv, _ := newTestServer(t)

	var view holdem.GameView
	status := do(t, srv, http.MethodPost, "/games", holdem.GameSettings{
		GameID: "t1", MaxPlayers: 6, SmallBlind: 1, BigBlind: 2, IsPrivate: true, HostID: "alice",
	}, &view)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "t1", view.GameID)

	var failure errorResponse
	status = do(t, srv, http.MethodPost, "/games", holdem.GameSettings{GameID: "t1", MaxPlayers: 6, SmallBlind: 1, BigBlind: 2}, &failure)
	assert.Equal(t, http.StatusConflict, status)

	status = do(t, srv, http.MethodPost, "/games", holdem.GameSettings{MaxPlayers: 1, SmallBlind: 1, BigBlind: 2}, &failure)
	assert.Equal(t, http.StatusBadRequest, status)

	var list listGamesResponse
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/games", nil, &list))
	assert.Equal(t, []string{"t1"}, list.Games)

	var resp actionResponse
	status = do(t, srv, http.MethodPost, "/games/t1/players", addPlayersRequest{Players: []holdem.PlayerSeat{
		{ID: "alice", Seat: 1, Chips: 100},
		{ID: "bob", Seat: 2, Chips: 100},
	}}, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)

	status = do(t, srv, http.MethodPost, "/games/t1/admin", map[string]any{"type": "ADMIN_START_GAME"}, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/games/t1?viewer=alice", nil, &view))
	require.Equal(t, holdem.Phase_Preflop, view.CurrentPhase)
	for _, p := range view.Players {
		if p.ID == "bob" {
			assert.Equal(t, []string{card.Hidden, card.Hidden}, p.HoleCards)
		} else {
			assert.NotContains(t, p.HoleCards, card.Hidden)
		}
	}

	actor := view.CurrentActorSeat
	actorID, otherID := "alice", "bob"
	if actor == 2 {
		actorID, otherID = "bob", "alice"
	}

	// fractional chips never reach the engine
	status = do(t, srv, http.MethodPost, "/games/t1/actions", `{"playerId": "`+actorID+`", "type": "bet", "seat": `+jsonInt(actor)+`, "amount": 2.5}`, &failure)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, holdem.ErrInvalidAmount.Error(), failure.Error)

	status = do(t, srv, http.MethodPost, "/games/t1/actions", map[string]any{"playerId": otherID, "type": "fold", "seat": actor}, &resp)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.False(t, resp.Success)
	assert.Equal(t, holdem.ErrNotYourTurn.Error(), resp.Error)

	status = do(t, srv, http.MethodPost, "/games/t1/actions", map[string]any{"playerId": actorID, "type": "fold", "seat": actor}, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.View)
	assert.Equal(t, actorID, resp.View.ViewerID)

	require.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/games/t1", nil, nil))
	assert.Eventually(t, func() bool {
		return do(t, srv, http.MethodGet, "/games/t1", nil, &failure) == http.StatusNotFound
	}, time.Second, 10*time.Millisecond)

	status = do(t, srv, http.MethodPost, "/games/missing/ready", playerRequest{PlayerID: "alice"}, &failure)
	assert.Equal(t, http.StatusNotFound, status)
}

func jsonInt(n int) string {
	raw, _ := json.Marshal(n)
	return string(raw)
}
