// Command survey runs the household survey histogram analysis.
//
// Usage:
//
//	go run ./cmd/survey histograms \
//	  --data ./Data/cov19tracker_cleaned.csv \
//	  --out plots \
//	  --xlsx plots/histograms.xlsx
//
// Every flag falls back to its environment variable (see internal/config).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
