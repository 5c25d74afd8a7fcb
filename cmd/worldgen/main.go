// Command worldgen runs one deterministic map-generation pass and writes
// the result as a JSON snapshot, recording its progress in a SQLite ledger
// and, optionally, broadcasting stage events over a WebSocket.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/pdelewski/civ-worldgen/internal/ledger"
	"github.com/pdelewski/civ-worldgen/internal/logging"
	"github.com/pdelewski/civ-worldgen/internal/progress"
	"github.com/pdelewski/civ-worldgen/internal/ruleset"
	"github.com/pdelewski/civ-worldgen/internal/worldgen"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/terrain"
)

func main() {
	seed := flag.Int64("seed", 1, "PRNG seed")
	worldSize := flag.String("world-size", "Standard", "Duel, Tiny, Small, Standard, Large, Huge")
	numCivs := flag.Int("civs", 8, "number of civilizations")
	numCityStates := flag.Int("city-states", 16, "number of city-states")
	numWonders := flag.Int("wonders", 5, "number of natural wonders")
	rulesetPath := flag.String("ruleset", "", "path to a YAML ruleset (required)")
	outPath := flag.String("out", "worldgen-output.json", "path to write the JSON snapshot")
	ledgerPath := flag.String("ledger", "worldgen.db", "path to the SQLite run ledger")
	listenAddr := flag.String("listen", "", "if set, serve progress over ws://<addr>/progress while generating")
	logFormat := flag.String("log-format", "text", "text or json")
	flag.Parse()

	logCfg := logging.DefaultConfig()
	logCfg.Format = logging.Format(*logFormat)
	log := logging.New(logCfg)

	if *rulesetPath == "" {
		log.Fatal("worldgen: -ruleset is required")
	}

	rules, err := ruleset.LoadYAML(*rulesetPath)
	if err != nil {
		log.WithError(err).Fatal("worldgen: load ruleset")
	}

	size, ok := parseWorldSize(*worldSize)
	if !ok {
		log.Fatalf("worldgen: unknown world size %q", *worldSize)
	}

	opts := worldgen.DefaultOptions()
	opts.Seed = *seed
	opts.WorldSize = size
	opts.Width, opts.Height = size.Dimensions()
	opts.NumCivilization = *numCivs
	opts.NumCityState = *numCityStates
	opts.NumNaturalWonder = *numWonders
	opts.RulesetPath = *rulesetPath

	optionsJSON, err := json.Marshal(opts)
	if err != nil {
		log.WithError(err).Fatal("worldgen: marshal options")
	}

	runID := uuid.New().String()
	entry := logging.RunLogger(log, runID, opts.Seed)

	db, err := ledger.Open(*ledgerPath)
	if err != nil {
		entry.WithError(err).Fatal("worldgen: open ledger")
	}
	defer db.Close()

	if err := db.StartRun(runID, opts.Seed, string(optionsJSON)); err != nil {
		entry.WithError(err).Fatal("worldgen: record run start")
	}

	hub := progress.NewHub(entry)
	go hub.Run()
	defer hub.Close()

	if *listenAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/progress", hub.HandleWebSocket)
		go func() {
			entry.Infof("worldgen: serving progress on ws://%s/progress", *listenAddr)
			if err := http.ListenAndServe(*listenAddr, mux); err != nil {
				entry.WithError(err).Error("worldgen: progress server stopped")
			}
		}()
	}

	report := func(stage string) {
		logging.StageLogger(entry, stage).Info("worldgen: stage started")
		if err := db.RecordStage(runID, stage); err != nil {
			entry.WithError(err).Warn("worldgen: record stage")
		}
		hub.Stage(runID, stage)
	}

	src := terrain.NewSynthesizer(opts.Layout(), terrain.Config{Seed: opts.Seed})

	result, err := worldgen.Generate(src, rules, opts, report)
	if err != nil {
		db.FinishRun(runID, err.Error())
		hub.Fail(runID, err)
		entry.WithError(err).Fatal("worldgen: generation failed")
	}

	snapshot := result.ToSnapshot()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		db.FinishRun(runID, err.Error())
		entry.WithError(err).Fatal("worldgen: marshal snapshot")
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		db.FinishRun(runID, err.Error())
		entry.WithError(err).Fatal("worldgen: write snapshot")
	}

	if err := db.FinishRun(runID, ""); err != nil {
		entry.WithError(err).Warn("worldgen: record run finish")
	}
	hub.Complete(runID)

	entry.Infof("worldgen: wrote %s (%d civs, %d city-states)", *outPath, len(result.Civs), len(result.CityStates))
	fmt.Printf("run %s complete: %s\n", runID, *outPath)
}

func parseWorldSize(s string) (worldgen.WorldSize, bool) {
	switch s {
	case "Duel":
		return worldgen.Duel, true
	case "Tiny":
		return worldgen.Tiny, true
	case "Small":
		return worldgen.Small, true
	case "Standard":
		return worldgen.Standard, true
	case "Large":
		return worldgen.Large, true
	case "Huge":
		return worldgen.Huge, true
	default:
		return 0, false
	}
}
