package main

import (
	"fmt"
	"os"

	"raypick/internal/config"
	"raypick/internal/logging"
	"raypick/internal/physics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	var configPath string

	root := &cobra.Command{
		Use:     "raypick",
		Short:   "Cached center-ray picking with frame statistics",
		Version: version,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (defaults if empty)")

	root.AddCommand(
		newRunCmd(&configPath),
		newBenchCmd(&configPath),
		newHistoryCmd(&configPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger shared by every subcommand.
func setup(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New("raypick", cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// worldLoader returns a function that builds the configured collider world.
func worldLoader(cfg *config.Config, logger *zap.Logger) func() (*physics.World, error) {
	return func() (*physics.World, error) {
		if cfg.Scene == "" {
			return physics.Gallery(), nil
		}
		w, err := physics.LoadScene(cfg.Scene)
		if err != nil {
			return nil, err
		}
		logger.Info("scene loaded", zap.String("path", cfg.Scene), zap.Int("colliders", w.Len()))
		return w, nil
	}
}
