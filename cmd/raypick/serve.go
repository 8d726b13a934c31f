package main

import (
	"context"

	"raypick/internal/config"
	"raypick/internal/metrics"

	"go.uber.org/zap"
)

// metricsAddr picks the --metrics flag over the config file.
func metricsAddr(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Metrics.Listen
}

// startMetrics serves src on addr until ctx is done. The returned func blocks
// until the server has stopped. An empty addr serves nothing.
func startMetrics(ctx context.Context, addr string, src metrics.Source, logger *zap.Logger) (wait func()) {
	done := make(chan struct{})
	if addr == "" {
		close(done)
		return func() { <-done }
	}
	go func() {
		defer close(done)
		if err := metrics.Serve(ctx, addr, src, logger); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	return func() { <-done }
}
