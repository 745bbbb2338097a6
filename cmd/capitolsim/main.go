// Command capitolsim runs the legislative voting simulation: a seeded
// population of legislators works through a docket of bills, making
// deals, betraying each other, and voting under lobby pressure.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/capitol-sim/internal/agents"
	"github.com/talgya/capitol-sim/internal/api"
	"github.com/talgya/capitol-sim/internal/config"
	"github.com/talgya/capitol-sim/internal/engine"
	"github.com/talgya/capitol-sim/internal/entropy"
	"github.com/talgya/capitol-sim/internal/lobby"
	"github.com/talgya/capitol-sim/internal/persistence"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	seedFlag := flag.Int64("seed", 0, "override the config seed (0 = use config)")
	roundsFlag := flag.Int("rounds", 0, "override docket length (0 = use config)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Capitol — Legislative Voting Simulation")

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *roundsFlag != 0 {
		cfg.Rounds = *roundsFlag
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = entropy.ProcessSeed()
	}
	slog.Info("run parameters", "seed", seed, "rounds", cfg.Rounds,
		"capture_prob", cfg.CaptureProb, "deal_prob", cfg.DealProb, "betray_prob", cfg.BetrayProb)

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.DatabasePath != "" {
		os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755)
		db, err = persistence.Open(cfg.DatabasePath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database opened", "path", cfg.DatabasePath)
	}

	// ── Population ────────────────────────────────────────────────────
	spawner := agents.NewSpawner(entropy.Seeded(seed+300), cfg.CaptureProb)

	population, err := spawnLegislature(spawner, cfg)
	if err != nil {
		slog.Error("failed to spawn population", "error", err)
		os.Exit(1)
	}
	agents.InitializeTrust(population)

	captured := 0
	for _, l := range population {
		if l.Captured {
			captured++
		}
	}
	slog.Info("legislature seated",
		"members", len(population),
		"house", countChamber(population, agents.ChamberHouse),
		"senate", countChamber(population, agents.ChamberSenate),
		"captured", captured,
	)

	// ── Docket ────────────────────────────────────────────────────────
	bills := docketFromConfig(cfg)
	if len(bills) == 0 {
		bills = engine.GenerateBills(entropy.Seeded(seed+100), partiesOf(population), cfg.Rounds)
		slog.Info("generated docket", "bills", len(bills))
	}

	// ── Lobby providers ───────────────────────────────────────────────
	table := make(lobby.Table, len(cfg.Lobby.Table))
	for party, pressure := range cfg.Lobby.Table {
		table[agents.Party(party)] = pressure
	}
	var drift *lobby.Drift
	if cfg.Lobby.DriftAmplitude > 0 {
		drift = lobby.NewDrift(seed+1, cfg.Lobby.DriftAmplitude)
	}

	// ── Session ───────────────────────────────────────────────────────
	tuning := engine.Tuning{DealProb: cfg.DealProb, BetrayProb: cfg.BetrayProb}
	sess := engine.NewSession(population, entropy.Seeded(seed), tuning, table, drift)

	if cfg.APIPort > 0 {
		apiServer := &api.Server{Sess: sess, Port: cfg.APIPort}
		apiServer.Start()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// ── Run the docket ────────────────────────────────────────────────
	interval := time.Duration(cfg.RoundIntervalMS) * time.Millisecond
	interrupted := false

	for i, bill := range bills {
		sess.RunRound(bill)

		if interval > 0 && i < len(bills)-1 {
			select {
			case sig := <-sigCh:
				slog.Info("received signal, stopping early", "signal", sig)
				interrupted = true
			case <-time.After(interval):
			}
		} else {
			select {
			case sig := <-sigCh:
				slog.Info("received signal, stopping early", "signal", sig)
				interrupted = true
			default:
			}
		}
		if interrupted {
			break
		}
	}

	// ── Archive and report ───────────────────────────────────────────
	sessionID := uuid.New().String()
	if db != nil {
		if err := db.SaveSession(sessionID, seed, sess); err != nil {
			slog.Error("failed to archive session", "error", err)
		} else {
			slog.Info("session archived", "session_id", sessionID)
		}
	}

	stats := sess.StatsSnapshot()
	fmt.Printf("\nSession complete after the %s round: %d of %d bills passed.\n",
		humanize.Ordinal(stats.RoundsRun), stats.BillsPassed, stats.RoundsRun)
	fmt.Printf("%s votes cast, %s deals struck, %s betrayals.\n",
		humanize.Comma(int64(stats.TotalYes+stats.TotalNo)),
		humanize.Comma(int64(stats.Deals)),
		humanize.Comma(int64(stats.Betrayals)))
	fmt.Printf("Average approval %.3f, average reputation %.3f.\n",
		stats.AvgApproval, stats.AvgReputation)

	if cfg.APIPort > 0 && !interrupted {
		fmt.Printf("Observer: http://localhost:%d/api/v1/status (Ctrl+C to exit)\n", cfg.APIPort)
		<-sigCh
	}
}

// spawnLegislature builds both chambers from the config seat map.
func spawnLegislature(spawner *agents.Spawner, cfg config.Config) ([]*agents.Legislator, error) {
	var population []*agents.Legislator
	for _, chamberName := range []string{"house", "senate"} {
		seatCfg, ok := cfg.Seats[chamberName]
		if !ok {
			continue
		}
		chamber, err := agents.ParseChamber(chamberName)
		if err != nil {
			return nil, err
		}
		seats := make(map[agents.Party]int, len(seatCfg))
		for party, n := range seatCfg {
			seats[agents.Party(party)] = n
		}
		members, err := spawner.SpawnChamber(chamber, seats)
		if err != nil {
			return nil, err
		}
		population = append(population, members...)
	}
	if len(population) == 0 {
		return nil, fmt.Errorf("config seats produced an empty legislature")
	}
	return population, nil
}

func countChamber(population []*agents.Legislator, chamber agents.Chamber) int {
	n := 0
	for _, l := range population {
		if l.Chamber == chamber {
			n++
		}
	}
	return n
}

func partiesOf(population []*agents.Legislator) []agents.Party {
	seen := make(map[agents.Party]bool)
	var parties []agents.Party
	for _, l := range population {
		if !seen[l.Party] {
			seen[l.Party] = true
			parties = append(parties, l.Party)
		}
	}
	return parties
}

// docketFromConfig converts configured bills into engine bills.
func docketFromConfig(cfg config.Config) []engine.Bill {
	bills := make([]engine.Bill, 0, len(cfg.Bills))
	for _, b := range cfg.Bills {
		stances := make(agents.Stances, len(b.Stances))
		for party, stance := range b.Stances {
			stances[agents.Party(party)] = stance
		}
		bills = append(bills, engine.Bill{Title: b.Title, Stances: stances})
	}
	return bills
}
