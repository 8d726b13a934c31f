package main

import (
	"context"

	"raypick/internal/game"

	"github.com/spf13/cobra"
)

func newRunCmd(configPath *string) *cobra.Command {
	var metricsFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive scene (F3 prints cache stats)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			g, err := game.New(cfg, worldLoader(cfg, logger), logger)
			if err != nil {
				return err
			}

			// the window handles close; the server stops when the loop returns
			ctx, cancel := context.WithCancel(context.Background())
			wait := startMetrics(ctx, metricsAddr(metricsFlag, cfg), g.Driver, logger)

			g.Run()
			cancel()
			wait()
			return nil
		},
	}

	cmd.Flags().StringVar(&metricsFlag, "metrics", "", "serve Prometheus metrics on this address (overrides config)")
	return cmd
}
