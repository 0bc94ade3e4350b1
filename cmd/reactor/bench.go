package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/fuzz"
)

func benchCmd(global *globalOptions) *cobra.Command {
	var (
		size    int
		rounds  int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the list reconciler",
		Long: `Time the keyed list reconciler on large lists for common edits:
append, prepend, swap, reverse, shuffle, remove and replace.

Examples:
  reactor bench
  reactor bench --size=10000 --rounds=20
  reactor bench --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("size") {
				cfg.Bench.Size = size
			}
			if cmd.Flags().Changed("rounds") {
				cfg.Bench.Rounds = rounds
			}

			logger.Debug("benchmark", "size", cfg.Bench.Size, "rounds", cfg.Bench.Rounds)
			results, err := fuzz.Bench(context.Background(), fuzz.BenchOptions{
				Size:   cfg.Bench.Size,
				Rounds: cfg.Bench.Rounds,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			fmt.Println()
			info("%d items, %d rounds", cfg.Bench.Size, cfg.Bench.Rounds)
			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "  SCENARIO\tPER OP\tCREATED\tDISPOSED")
			for _, r := range results {
				fmt.Fprintf(w, "  %s\t%s\t%d\t%d\n", r.Scenario, r.PerOp, r.Created, r.Disposed)
			}
			w.Flush()
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "List length (default from config)")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Reconciliations per scenario (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")

	return cmd
}
