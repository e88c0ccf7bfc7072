package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"idb-monitor/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "steady", "Scenario to generate: steady, lagging, sparse")
	outDir := flag.String("out", "./data", "Output directory for mock files")
	count := flag.Int("count", 2000, "Number of field records to generate")
	days := flag.Int("days", 14, "Number of survey days")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-seeded)")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Count:    *count,
		Days:     *days,
		Seed:     *seed,
		Now:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Count: %d, Days: %d) to %s...\n", cfg.Scenario, cfg.Count, cfg.Days, *outDir)

	field, boq := engine.Generate(cfg)
	if err := engine.Save(*outDir, field, boq); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. %d field records, %d BOQ lines.\n", len(field), len(boq))
}
