package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"swarm/draft"
)

// NewDraftState renders a state as the acting player's payload.
func NewDraftState(state draft.State, required int) DraftState {
	return DraftState{
		PlayerAPicks:           state.Own.With(),
		PlayerBPicks:           state.Opponent.With(),
		PlayerABans:            state.OwnBans,
		PlayerBBans:            state.OpponentBans,
		CurrentPhase:           string(state.Phase),
		PlayerAAvailableIds:    state.Pool.IDs(),
		PlayerBPossibleCounter: state.Counters,
		Required:               required,
	}
}

// Client asks a remote Server for recommendations.
type Client struct {
	serverURL string
	http      *http.Client
}

func NewClient(serverURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		http:      client,
	}
}

func (c *Client) Recommend(state draft.State, required int) (Recommendation, error) {
	body, err := json.Marshal(NewDraftState(state, required))
	if err != nil {
		return Recommendation{}, fmt.Errorf("encode draft state: %w", err)
	}

	resp, err := c.http.Post(c.serverURL+"/recommend", "application/json", bytes.NewReader(body))
	if err != nil {
		return Recommendation{}, fmt.Errorf("request recommendation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return Recommendation{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}

	var payload RecommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Recommendation{}, fmt.Errorf("decode recommendation: %w", err)
	}
	return Recommendation{
		Picks:   payload.Picks,
		Score:   payload.Score,
		Backend: payload.Backend,
		Outcome: payload.Outcome,
	}, nil
}
