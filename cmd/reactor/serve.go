package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/live"
	"github.com/vango-dev/reactor/pkg/instrument"
)

func serveCmd(global *globalOptions) *cobra.Command {
	var (
		addr     string
		interval string
		items    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Stream a live reactive list",
		Long: `Serve a reactive list that is edited on every tick. Connected
websocket clients receive the patches the reconciler applied.

Endpoints:
  /healthz   liveness probe
  /metrics   Prometheus metrics
  /snapshot  current document (add ?format=json for JSON)
  /ws        websocket patch stream

Examples:
  reactor serve
  reactor serve --addr=:9090 --interval=100ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}
			if cmd.Flags().Changed("interval") {
				cfg.Serve.Interval = interval
			}
			if cmd.Flags().Changed("items") {
				cfg.Serve.Items = items
			}
			tick, err := cfg.ServeInterval()
			if err != nil {
				return err
			}

			printBanner()
			fmt.Println("  serve")
			fmt.Println()
			if cfg.Serve.Items > 50 {
				warn("%d items make large frames", cfg.Serve.Items)
			}

			server := live.NewServer(live.Options{
				Addr:     cfg.Serve.Addr,
				Interval: tick,
				Items:    cfg.Serve.Items,
				Logger:   logger,
				Instrumentation: instrument.Multi(
					instrument.NewSlog(logger),
					instrument.NewTracing(),
				),
			})
			defer server.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success("Listening on %s", cfg.Serve.Addr)
			info("Press Ctrl+C to stop")
			fmt.Println()
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().StringVarP(&interval, "interval", "i", "", "Tick interval, e.g. 500ms")
	cmd.Flags().IntVar(&items, "items", 0, "Number of distinct items")

	return cmd
}
