// Command geosim runs the turn-based geopolitical economy simulation.
// With -turns it runs a headless batch; with -serve it exposes the HTTP
// shell and waits for commands.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/harlandq/geosim/internal/api"
	"github.com/harlandq/geosim/internal/config"
	"github.com/harlandq/geosim/internal/engine"
	"github.com/harlandq/geosim/internal/entropy"
	"github.com/harlandq/geosim/internal/persistence"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "YAML scenario file (default: built-in classic scenario)")
		generate     = flag.Int("generate", 0, "generate a scenario with N countries instead of loading one")
		seed         = flag.Int64("seed", 0, "override the scenario seed (0 = keep scenario seed)")
		player       = flag.String("player", "", "player-controlled country (empty = all AI)")
		turns        = flag.Int("turns", 0, "run N turns headless, then exit (unless -serve)")
		serve        = flag.Bool("serve", false, "serve the HTTP API after any batch turns")
		port         = flag.Int("port", 8080, "HTTP API port")
		journalPath  = flag.String("journal", "data/geosim.db", "turn journal path (empty = no journal)")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// ── Scenario ──────────────────────────────────────────────────────
	scenario, err := loadScenario(*scenarioPath, *generate, *seed)
	if err != nil {
		slog.Error("failed to load scenario", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		scenario.Seed = *seed
	}

	countries, err := scenario.Build()
	if err != nil {
		slog.Error("invalid scenario", "error", err)
		os.Exit(1)
	}

	world, err := engine.NewWorld(countries, entropy.NewSource(scenario.Seed))
	if err != nil {
		slog.Error("failed to build world", "error", err)
		os.Exit(1)
	}

	slog.Info("world ready",
		"scenario", scenario.Name,
		"seed", scenario.Seed,
		"countries", len(world.Countries),
		"player", *player,
	)

	// ── Journal ───────────────────────────────────────────────────────
	var journal *persistence.Journal
	if *journalPath != "" {
		if dir := filepath.Dir(*journalPath); dir != "." {
			os.MkdirAll(dir, 0755)
		}
		journal, err = persistence.Open(*journalPath)
		if err != nil {
			slog.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer journal.Close()
		journal.SetMeta("scenario", scenario.Name)
		journal.SetMeta("seed", fmt.Sprintf("%d", scenario.Seed))
		slog.Info("journal opened", "path", *journalPath, "run_id", journal.RunID())
	}

	// ── Batch turns ───────────────────────────────────────────────────
	for i := 0; i < *turns; i++ {
		world.AdvanceTurn(*player)
		logTurn(world)
		recordTurn(world, journal)
	}

	if !*serve {
		if *turns == 0 {
			flag.Usage()
			os.Exit(2)
		}
		return
	}

	// ── HTTP shell ────────────────────────────────────────────────────
	adminKey := os.Getenv("GEOSIM_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("GEOSIM_ADMIN_KEY not set — policy and turn endpoints will be disabled")
	}

	apiServer := &api.Server{
		World:    world,
		Journal:  journal,
		Player:   *player,
		Port:     *port,
		AdminKey: adminKey,
	}
	apiServer.Start()

	fmt.Printf("geosim: %d countries at turn %d\n", len(world.Countries), world.Turn)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig, "turn", world.Turn)
}

// loadScenario picks the scenario source: file, generator, or built-in.
func loadScenario(path string, generate int, seed int64) (*config.Scenario, error) {
	switch {
	case path != "":
		return config.Load(path)
	case generate > 0:
		if seed == 0 {
			seed = entropy.NewSource(0).Seed()
		}
		return config.Generate(seed, generate)
	default:
		return config.Default(), nil
	}
}

// logTurn emits the per-turn report, mirroring the stats the journal keeps.
func logTurn(w *engine.World) {
	slog.Info("turn complete",
		"turn", w.Turn,
		"total_gdp", fmt.Sprintf("%.1f", w.Stats.TotalGDP),
		"trade_volume", fmt.Sprintf("%.1f", w.Stats.TradeVolume),
		"tariff_leakage", fmt.Sprintf("%.1f", w.Stats.TariffLeakage),
		"blocked_pairs", w.Stats.BlockedPairs,
		"sanctions", w.Stats.SanctionsActive,
	)
}

// recordTurn appends the turn's events and stats to the journal.
func recordTurn(w *engine.World, journal *persistence.Journal) {
	if journal == nil {
		return
	}
	if err := journal.AppendEvents(w.Drain()); err != nil {
		slog.Error("journal events failed", "error", err)
	}
	if err := journal.RecordTurn(w.Turn, w.Stats); err != nil {
		slog.Error("journal stats failed", "error", err)
	}
}
