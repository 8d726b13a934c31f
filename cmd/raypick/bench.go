package main

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"raypick/internal/bench"
	"raypick/internal/camera"
	"raypick/internal/frame"
	"raypick/internal/pose"
	"raypick/internal/raycache"
	"raypick/internal/store"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBenchCmd(configPath *string) *cobra.Command {
	var (
		frames      int
		seed        int64
		name        string
		save        bool
		metricsFlag string
		hold        bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Drive a scripted camera path headlessly and report cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			world, err := worldLoader(cfg, logger)()
			if err != nil {
				return err
			}

			maxDist := cfg.Raycast.MaxDistance
			driver := frame.New(
				func(p pose.Pose) raycache.Result { return world.CenterRay(p, maxDist) },
				frame.WithThresholds(cfg.CacheThresholds()),
				frame.WithCapacity(cfg.Stats.Capacity),
				frame.WithLogger(logger),
			)

			addr := metricsAddr(metricsFlag, cfg)
			wait := startMetrics(ctx, addr, driver, logger)
			defer wait()
			defer stop()

			runner := &bench.Runner{
				Driver: driver,
				Camera: camera.New(rl.Vector3{X: 10, Y: 5, Z: 10}),
				DT:     1.0 / 60,
				Rand:   rand.New(rand.NewSource(seed)),
				OnPhase: func(phase string, ticks int) {
					s := driver.Summary()
					logger.Debug("phase done",
						zap.String("phase", phase),
						zap.Int("ticks", ticks),
						zap.Float64("hit_rate", s.HitRate))
				},
			}

			start := time.Now()
			ticks, err := runner.Run(ctx, bench.DefaultScript(frames))
			if err != nil {
				return fmt.Errorf("bench interrupted after %d ticks: %w", ticks, err)
			}
			logger.Info("bench complete", zap.Int("ticks", ticks), zap.Duration("elapsed", time.Since(start)))

			fmt.Println(driver.Report())

			if save {
				st, err := store.Open(cfg.DBPath)
				if err != nil {
					return err
				}
				defer st.Close()

				id, err := st.Save(ctx, store.Run{Name: name, Ticks: ticks, Summary: driver.Summary()})
				if err != nil {
					return err
				}
				logger.Info("run saved", zap.Int64("id", id), zap.String("db", cfg.DBPath))
			}

			if hold && addr != "" {
				logger.Info("holding metrics endpoint open, press Ctrl-C to exit")
				<-ctx.Done()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 600, "frames per script phase")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for the camera script")
	cmd.Flags().StringVar(&name, "name", "bench", "name recorded with the run")
	cmd.Flags().BoolVar(&save, "save", true, "record the summary in the run history database")
	cmd.Flags().StringVar(&metricsFlag, "metrics", "", "serve Prometheus metrics on this address (overrides config)")
	cmd.Flags().BoolVar(&hold, "hold", false, "keep serving metrics after the run until interrupted")
	return cmd
}
