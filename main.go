package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"swarm/agent"
	"swarm/catalog"
	"swarm/config"
	"swarm/draft"
	"swarm/engine"
	"swarm/metrics"
	"swarm/oracle"
	"swarm/random"
	"swarm/searcher"
)

func main() {
	simulate := flag.Bool("simulate", false, "Run oracle-vs-oracle drafts over the catalog")
	serve := flag.Bool("serve", false, "Start the recommendation server")
	drafts := flag.Int("drafts", 1, "Number of drafts to simulate")
	out := flag.String("out", "", "Directory for simulation records; empty disables them")
	opponent := flag.String("opponent", "", "URL of a running server to draft as side B")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	model, err := loadModel(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load oracle model")
	}
	monsters, err := loadCatalog(cfg.MonstersPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load monster catalog")
	}
	log.Info().Int("monsters", monsters.Len()).Msg("loaded catalog")

	s := searcher.NewSearcher(model,
		searcher.WithSlots(cfg.RosterSlots),
		searcher.WithPadding(model.Padding()),
		searcher.WithMetrics())

	switch {
	case *simulate:
		var b agent.Agent = agent.NewOracleAgent(s, true)
		if *opponent != "" {
			b = agent.NewClient(*opponent, nil)
		}
		if err := runSimulation(agent.NewOracleAgent(s, false), b, model, monsters, *drafts, *out); err != nil {
			log.Fatal().Err(err).Msg("simulation failed")
		}
	case *serve:
		server := agent.NewServer(agent.NewOracleAgent(s, cfg.SafeSearch),
			agent.WithRanker(s),
			agent.WithNames(monsters),
			agent.WithRankSample(cfg.RankSample),
			agent.WithServerSeed(random.Fixed(cfg.Seed)))
		if err := server.ListenAndServe(cfg.Addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func loadModel(cfg config.Config) (*oracle.Model, error) {
	f, err := os.Open(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	options := []oracle.Option{oracle.WithSlots(cfg.RosterSlots)}
	if cfg.Padding.IsPick() {
		options = append(options, oracle.WithPadding(cfg.Padding))
	}
	return oracle.Load(f, options...)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.Load(f)
}

// runSimulation drafts a against b over the whole catalog, alternating who
// picks first.
func runSimulation(a, b agent.Agent, judge searcher.Oracle, monsters *catalog.Catalog, drafts int, out string) error {
	var draftRecords []metrics.DraftRecord
	var moveRecords []metrics.MoveRecord
	for i := 1; i <= drafts; i++ {
		first := draft.SideA
		if i%2 == 0 {
			first = draft.SideB
		}
		log.Info().Msgf("starting draft %d of %d", i, drafts)

		e := engine.LocalEngine(monsters.Pool(), a, b, engine.WithFirst(first), engine.WithJudge(judge))
		res, err := e.Run()
		if err != nil {
			return fmt.Errorf("draft %d: %w", i, err)
		}
		for _, side := range []draft.Side{draft.SideA, draft.SideB} {
			log.Info().Msgf("side %s: %s (banned %s)", side, names(monsters, res.Rosters[side]), monsters.Name(res.Bans[side.Other()]))
		}
		log.Info().Msgf("completed draft %d with outcome %.4f for side A", i, res.Outcome)

		draftRecords = append(draftRecords, metrics.DraftRecord{
			ID:          i,
			RosterA:     res.Rosters[draft.SideA],
			RosterB:     res.Rosters[draft.SideB],
			BanOfA:      res.Bans[draft.SideA],
			BanOfB:      res.Bans[draft.SideB],
			Outcome:     res.Outcome,
			DraftMetric: res.Draft,
		})
		for _, m := range res.Moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Draft: i, MoveMetric: m})
		}
	}

	if out == "" {
		return nil
	}
	writer, err := metrics.NewWriter(out, "simulation")
	if err != nil {
		return err
	}
	if err := writer.WriteDraftRecords(draftRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored simulation records")
	return nil
}

func names(monsters *catalog.Catalog, roster draft.Roster) []string {
	out := make([]string, len(roster))
	for i, id := range roster {
		out[i] = monsters.Name(id)
	}
	return out
}
