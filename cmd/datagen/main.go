package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ldurand/paydash/backend/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		transactions = flag.Int("transactions", cfg.NumTransactions, "number of transactions to generate")
		currency     = flag.String("currency", cfg.Currency, "currency code applied to every record")
		seed         = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir    = flag.String("output-dir", "data", "directory to write transactions.json")
		writeStdout  = flag.Bool("stdout", false, "write dataset to stdout instead of a file")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumTransactions: *transactions,
		Currency:        *currency,
		Seed:            *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
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

	fmt.Fprintf(os.Stdout, "Generated %d transactions into %s\n", len(dataset.Transactions), *outputDir)
}
