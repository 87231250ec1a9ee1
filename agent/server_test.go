package agent

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"swarm/draft"
	"swarm/random"
	"swarm/searcher"
)

func newTestServer(options ...ServerOption) *httptest.Server {
	s := searcher.NewSearcher(searcher.OracleFunc(sum))
	options = append([]ServerOption{
		WithRanker(s),
		WithServerSeed(random.Fixed(3)),
		WithServerLogger(zerolog.Nop()),
	}, options...)
	return httptest.NewServer(NewServer(NewOracleAgent(s, false), options...).Handler())
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer(t *testing.T) {
	srv := newTestServer(WithNames(names{3: "Lushen"}))
	defer srv.Close()

	t.Run("reporting health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("recommending the opening pick", func(t *testing.T) {
		resp := post(t, srv.URL+"/recommend", `{
			"playerAPicks": [], "playerBPicks": [], "currentPhase": "picking",
			"playerAAvailableIds": [1, 2, 3], "playerBPossibleCounter": [4]
		}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got RecommendResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Equal(t, []draft.MonsterID{3}, got.Picks, "An empty draft should ask for one pick")
		require.Equal(t, []string{"Lushen"}, got.Names)
		require.Equal(t, OracleBackend, got.Backend)
	})

	t.Run("honouring an explicit pick count", func(t *testing.T) {
		resp := post(t, srv.URL+"/recommend", `{
			"playerAPicks": [], "playerBPicks": [], "currentPhase": "picking",
			"playerAAvailableIds": [1, 2, 3], "required": 2
		}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got RecommendResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got.Picks, 2)
		require.Equal(t, []string{"M2", "Lushen"}, got.Names)
	})

	t.Run("rejecting malformed payloads", func(t *testing.T) {
		resp := post(t, srv.URL+"/recommend", `{"playerAPicks": "none"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejecting a pool that offers a picked monster", func(t *testing.T) {
		resp := post(t, srv.URL+"/recommend", `{"playerAPicks": [1], "playerBPicks": [], "playerAAvailableIds": [1, 2, 3]}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejecting an empty pool", func(t *testing.T) {
		resp := post(t, srv.URL+"/recommend", `{"playerAPicks": [1], "playerBPicks": [2, 3], "playerAAvailableIds": []}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("rendering the pair ranking", func(t *testing.T) {
		resp := post(t, srv.URL+"/context", `{"playerAPicks": [], "playerBPicks": [], "playerAAvailableIds": [1, 2, 3]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		lines := strings.Split(string(body), "\n")
		require.Len(t, lines, 4, "Three candidates should rank every pair")
		require.Equal(t, "If player A picks M1 and M2, win probability: 3.0000", lines[1])
		require.Equal(t, "If player A picks M2 and Lushen, win probability: 5.0000", lines[3])
	})
}

func TestServerWithoutRanker(t *testing.T) {
	s := NewServer(NewOracleAgent(searcher.NewSearcher(searcher.OracleFunc(sum)), false), WithServerLogger(zerolog.Nop()))
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp := post(t, srv.URL+"/context", `{"playerAAvailableIds": [1, 2, 3]}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClient(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()
	c := NewClient(srv.URL+"/", nil)

	t.Run("round-tripping a recommendation", func(t *testing.T) {
		state := mustState(t, draft.Roster{5}, draft.Roster{6, 7}, 1, 2, 3)
		got, err := c.Recommend(state, 2)
		require.NoError(t, err)

		want, err := NewOracleAgent(searcher.NewSearcher(searcher.OracleFunc(sum)), false).Recommend(state, 2)
		require.NoError(t, err)
		require.Equal(t, want.Picks, got.Picks)
		require.Equal(t, want.Score, got.Score)
		require.Equal(t, OracleBackend, got.Backend)
	})

	t.Run("surfacing server errors", func(t *testing.T) {
		_, err := c.Recommend(mustState(t, draft.Roster{5}, draft.Roster{6, 7}), 2)
		require.ErrorContains(t, err, "status 422")
	})
}

func TestNewDraftState(t *testing.T) {
	state := mustState(t, draft.Roster{5}, draft.Roster{6, 7}, 1, 2).
		WithBans([]draft.MonsterID{8}, nil).
		WithCounters([]draft.MonsterID{9})

	payload := NewDraftState(state, 2)
	back, err := payload.State()
	require.NoError(t, err)
	require.Equal(t, state, back)
	require.Equal(t, 2, payload.Required)
}
