package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/airnet/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		airports       = flag.Int("airports", cfg.NumAirports, "number of airports to generate")
		routes         = flag.Int("routes", cfg.NumRoutes, "number of route records to generate")
		airlines       = flag.Int("airlines", cfg.NumAirlines, "number of airlines to generate")
		airplanes      = flag.Int("airplanes", cfg.NumAirplanes, "number of airplane types to generate")
		hubShare       = flag.Float64("hub-share", cfg.HubShare, "probability that a route endpoint is a hub airport")
		nullCodeChance = flag.Float64("null-code-chance", cfg.NullCodeChance, "probability that an airport has no IATA code")
		seed           = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir      = flag.String("output-dir", "data", "directory to write the four CSV tables")
		writeStdout    = flag.Bool("stdout", false, "write combined dataset as JSON to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumAirports:    *airports,
		NumRoutes:      *routes,
		NumAirlines:    *airlines,
		NumAirplanes:   *airplanes,
		HubShare:       clampProbability(*hubShare),
		NullCodeChance: clampProbability(*nullCodeChance),
		Seed:           *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d airports and %d routes into %s\n", len(dataset.Airports), len(dataset.Routes), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
