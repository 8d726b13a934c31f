// Package metrics exposes raycast cache statistics to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"raypick/internal/perf"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Source is anything that can produce a summary without blocking the tick loop.
type Source interface {
	Summary() perf.Summary
}

const namespace = "raypick"

// Collector reads a fresh summary on every scrape.
type Collector struct {
	src Source

	hits          *prometheus.Desc
	misses        *prometheus.Desc
	invalidations *prometheus.Desc
	hitRate       *prometheus.Desc
	frameAvg      *prometheus.Desc
	frameMax      *prometheus.Desc
	raycastAvg    *prometheus.Desc
	raycastMax    *prometheus.Desc
	fps           *prometheus.Desc
}

func NewCollector(src Source) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &Collector{
		src:           src,
		hits:          desc("cache_hits_total", "Ticks served from the raycast cache."),
		misses:        desc("cache_misses_total", "Ticks that ran a real raycast."),
		invalidations: desc("cache_invalidations_total", "Invalidation events delivered to the gate."),
		hitRate:       desc("cache_hit_ratio", "Lifetime hits / (hits + misses)."),
		frameAvg:      desc("frame_seconds_avg", "Average frame time over the rolling window."),
		frameMax:      desc("frame_seconds_max", "Maximum frame time over the rolling window."),
		raycastAvg:    desc("raycast_seconds_avg", "Average raycast time over the rolling window."),
		raycastMax:    desc("raycast_seconds_max", "Maximum raycast time over the rolling window."),
		fps:           desc("fps", "Frames per second derived from the average frame time."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.invalidations
	ch <- c.hitRate
	ch <- c.frameAvg
	ch <- c.frameMax
	ch <- c.raycastAvg
	ch <- c.raycastMax
	ch <- c.fps
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Summary()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.invalidations, prometheus.CounterValue, float64(s.Invalidations))
	ch <- prometheus.MustNewConstMetric(c.hitRate, prometheus.GaugeValue, s.HitRate)
	ch <- prometheus.MustNewConstMetric(c.frameAvg, prometheus.GaugeValue, s.FrameAvg.Seconds())
	ch <- prometheus.MustNewConstMetric(c.frameMax, prometheus.GaugeValue, s.FrameMax.Seconds())
	ch <- prometheus.MustNewConstMetric(c.raycastAvg, prometheus.GaugeValue, s.RaycastAvg.Seconds())
	ch <- prometheus.MustNewConstMetric(c.raycastMax, prometheus.GaugeValue, s.RaycastMax.Seconds())
	ch <- prometheus.MustNewConstMetric(c.fps, prometheus.GaugeValue, s.FPS)
}

// Handler returns an HTTP handler serving only this collector.
func Handler(src Source) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(src)); err != nil {
		return nil, fmt.Errorf("register collector: %w", err)
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, src Source, logger *zap.Logger) error {
	h, err := Handler(src)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
