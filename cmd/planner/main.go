// Package main provides the character build planner CLI. It wires together
// configuration, the ruleset tables, PostgreSQL profile storage, and the
// optional Lua bonus providers, then recalculates and prints one profile.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charplanner/internal/config"
	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/recalc"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
	"github.com/cory-johannsen/charplanner/internal/observability"
	"github.com/cory-johannsen/charplanner/internal/scripting"
	"github.com/cory-johannsen/charplanner/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/planner.yaml", "path to configuration file")
	name := flag.String("character", "", "profile name to recalculate")
	flag.Parse()

	if *name == "" {
		log.Fatal("usage: planner -character <name> [-config <path>]")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting planner",
		zap.String("ruleset", cfg.Rules.Version),
		zap.String("character", *name),
	)

	// Load ruleset data
	registry, err := ruleset.LoadDirectory(cfg.Rules.Dir)
	if err != nil {
		logger.Fatal("loading rulesets", zap.Error(err))
	}
	tables, ok := registry.Version(cfg.Rules.Version)
	if !ok {
		logger.Fatal("ruleset version not found", zap.String("version", cfg.Rules.Version))
	}

	// Connect to PostgreSQL
	ctx := context.Background()
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	equipment := loadProvider("equipment", cfg.Scripting.EquipmentDir, tables, logger, cfg.Scripting.InstructionLimit)
	perks := loadProvider("perks", cfg.Scripting.PerksDir, tables, logger, cfg.Scripting.InstructionLimit)
	buffs := loadProvider("buffs", cfg.Scripting.BuffsDir, tables, logger, cfg.Scripting.InstructionLimit)

	repo := postgres.NewProfileRepository(pool.DB())
	snap, err := repo.GetByName(ctx, *name)
	if err != nil {
		logger.Fatal("loading profile", zap.String("character", *name), zap.Error(err))
	}

	integrator := recalc.NewIntegrator(tables, logger, equipment, perks, buffs)
	sheet, err := integrator.Recalculate(ctx, snap)
	if err != nil {
		logger.Fatal("recalculating", zap.Error(err))
	}

	printSheet(tables, snap, sheet)
	for _, issue := range recalc.Validate(tables, snap) {
		fmt.Fprintf(os.Stdout, "%s [%s]: %s\n", issue.Severity, issue.Code, issue.Message)
	}

	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}

// loadProvider builds one Lua bonus source, or nil when no directory is
// configured.
func loadProvider(name, dir string, tables ruleset.Tables, logger *zap.Logger, limit int) recalc.BonusSource {
	if dir == "" {
		return nil
	}
	p, err := scripting.NewBonusProvider(name, tables, logger, dir, limit)
	if err != nil {
		logger.Fatal("loading bonus provider", zap.String("provider", name), zap.Error(err))
	}
	return p
}

func printSheet(tables ruleset.Tables, snap *character.Snapshot, sheet *character.Sheet) {
	fmt.Printf("%s (level %d)\n\n", snap.Name, snap.Level)

	fmt.Println("Abilities")
	for a := 0; a < character.NumAbilities; a++ {
		rec := sheet.Abilities[a]
		fmt.Printf("  %-14s %5d / %-5d (base %d, bought %d, bonus %+d)\n",
			character.AbilityName(a), rec.Total, rec.Cap, rec.Base, rec.PointsFromIP, rec.BonusTotal())
	}

	fmt.Println("\nSkills")
	ids := make([]int, 0, len(sheet.Skills))
	for id := range sheet.Skills {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		rec := sheet.Skills[id]
		label := fmt.Sprintf("#%d", id)
		if def, ok := tables.Skill(id); ok {
			label = def.Name
		}
		fmt.Printf("  %-20s %5d / %-5d (trickle %d, bought %d, bonus %+d)\n",
			label, rec.Total, rec.Cap, rec.Trickle, rec.PointsFromIP, rec.BonusTotal())
	}

	fmt.Printf("\nMax Health %d   Max Nano %d\n", sheet.MaxHealth, sheet.MaxNanoEnergy)

	l := sheet.Ledger
	fmt.Printf("\nIP: %d spent of %d (%d remaining, %d%% efficiency)\n",
		l.TotalUsed, l.TotalAvailable, l.Remaining, l.Efficiency)
}
