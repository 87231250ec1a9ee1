package agent

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"swarm/draft"
	"swarm/metrics"
	"swarm/random"
	"swarm/searcher"
)

// DraftState is the JSON shape callers post, always from player A's side.
type DraftState struct {
	PlayerAPicks           []draft.MonsterID `json:"playerAPicks"`
	PlayerBPicks           []draft.MonsterID `json:"playerBPicks"`
	PlayerABans            []draft.MonsterID `json:"playerABans"`
	PlayerBBans            []draft.MonsterID `json:"playerBBans"`
	CurrentPhase           string            `json:"currentPhase"`
	PlayerAAvailableIds    []draft.MonsterID `json:"playerAAvailableIds"`
	PlayerBPossibleCounter []draft.MonsterID `json:"playerBPossibleCounter"`
	// Required overrides the pick count derived from roster sizes.
	Required int `json:"required,omitempty"`
}

func (d DraftState) State() (draft.State, error) {
	state, err := draft.NewState(d.PlayerAPicks, d.PlayerBPicks, draft.NewPool(d.PlayerAAvailableIds...), draft.Phase(d.CurrentPhase))
	if err != nil {
		return draft.State{}, err
	}
	return state.WithBans(d.PlayerABans, d.PlayerBBans).WithCounters(d.PlayerBPossibleCounter), nil
}

type RecommendResponse struct {
	Picks   []draft.MonsterID `json:"picks"`
	Names   []string          `json:"names"`
	Score   float64           `json:"score,omitempty"`
	Backend Backend           `json:"backend"`
	Outcome string            `json:"outcome,omitempty"`
}

// Ranker scores candidate pairs for the plain-text context.
type Ranker interface {
	RankPairs(state draft.State, sample int, rng *rand.Rand) ([]searcher.Pick, metrics.SearchMetric, error)
}

type ServerOption func(s *Server)

func WithRanker(ranker Ranker) ServerOption {
	return func(s *Server) {
		s.ranker = ranker
	}
}

func WithNames(names Namer) ServerOption {
	return func(s *Server) {
		if names != nil {
			s.names = names
		}
	}
}

// WithRankSample bounds how many pairs the context scores. Zero samples as
// many pairs as there are candidates.
func WithRankSample(n int) ServerOption {
	return func(s *Server) {
		s.sample = n
	}
}

func WithServerSeed(seed random.SeedFunc) ServerOption {
	return func(s *Server) {
		if seed != nil {
			s.seed = seed
		}
	}
}

func WithServerLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

type Server struct {
	agent  Agent
	ranker Ranker
	names  Namer
	sample int
	seed   random.SeedFunc
	logger zerolog.Logger
}

func NewServer(agent Agent, options ...ServerOption) *Server {
	s := &Server{
		agent:  agent,
		names:  tokenNamer{},
		seed:   random.NewSeed,
		logger: log.Logger,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /recommend", s.handleRecommend)
	mux.HandleFunc("POST /context", s.handleContext)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("starting recommendation server")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	payload, state, ok := s.decode(w, r)
	if !ok {
		return
	}
	required := payload.Required
	if required == 0 {
		required = draft.RequiredPicks(state.Own, state.Opponent)
	}

	rec, err := s.agent.Recommend(state, required)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info().
		Str("backend", string(rec.Backend)).
		Interface("picks", rec.Picks).
		Dur("duration", rec.Metric.Duration).
		Msg("recommended picks")

	names := make([]string, len(rec.Picks))
	for i, id := range rec.Picks {
		names[i] = nameOf(s.names, id)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RecommendResponse{
		Picks:   rec.Picks,
		Names:   names,
		Score:   rec.Score,
		Backend: rec.Backend,
		Outcome: rec.Outcome,
	}); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode recommendation")
	}
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	if s.ranker == nil {
		http.Error(w, "no oracle configured", http.StatusNotFound)
		return
	}
	_, state, ok := s.decode(w, r)
	if !ok {
		return
	}
	sample := s.sample
	if sample == 0 {
		sample = state.Pool.Len()
	}

	ranked, _, err := s.ranker.RankPairs(state, sample, random.New(s.seed))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(FormatRanking(ranked, s.names)))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (DraftState, draft.State, bool) {
	var payload DraftState
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return DraftState{}, draft.State{}, false
	}
	state, err := payload.State()
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return DraftState{}, draft.State{}, false
	}
	return payload, state, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, draft.ErrInvalidPickCount),
		errors.Is(err, draft.ErrPoolTooSmall),
		errors.Is(err, draft.ErrRosterSize),
		errors.Is(err, searcher.ErrEmptyPool):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.logger.Error().Err(err).Msg("recommendation failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
