// Package frame drives the raycast cache once per simulation tick.
package frame

import (
	"time"

	"raypick/internal/perf"
	"raypick/internal/pose"
	"raypick/internal/raycache"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// QueryFunc performs the real spatial query. It is only called on a miss.
type QueryFunc func(pose.Pose) raycache.Result

// Driver is the per-simulation context: one cache, one gate, one monitor.
// Build it once at startup and call Tick from the simulation loop only.
type Driver struct {
	thresholds raycache.Thresholds
	capacity   int
	cache      *raycache.Cache
	gate       *raycache.Gate
	monitor    *perf.Monitor
	reporter   *perf.Reporter
	query      QueryFunc
	clock      clock.Clock
	logger     *zap.Logger

	lastTick time.Time
	ticked   bool
	last     raycache.Result
}

type Option func(*Driver)

func WithThresholds(t raycache.Thresholds) Option {
	return func(d *Driver) {
		d.thresholds = t
	}
}

// WithCapacity sets the size of both timing windows.
func WithCapacity(n int) Option {
	return func(d *Driver) {
		d.capacity = n
	}
}

func WithClock(c clock.Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

func New(query QueryFunc, opts ...Option) *Driver {
	d := &Driver{
		thresholds: raycache.DefaultThresholds(),
		capacity:   perf.DefaultCapacity,
		query:      query,
		clock:      clock.New(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.cache = raycache.New()
	d.gate = raycache.NewGate(d.cache, d.logger)
	d.monitor = perf.NewMonitor(d.capacity)
	d.reporter = perf.NewReporter(d.monitor)
	return d
}

// Tick evaluates the cache for p and returns the result to use this frame,
// and whether it was served from the cache.
//
// The raycast sample is the time spent deciding plus querying. The frame
// sample is the interval since the previous Tick, so the first tick records
// no frame sample.
func (d *Driver) Tick(p pose.Pose) (raycache.Result, bool) {
	now := d.clock.Now()

	res, hit := d.lookup(p)

	outcome := perf.Miss
	if hit {
		outcome = perf.Hit
	}
	d.monitor.Record(perf.Sample{Kind: perf.RaycastTime, Outcome: outcome, Duration: d.clock.Since(now)})
	if d.ticked {
		d.monitor.Record(perf.Sample{Kind: perf.FrameTime, Outcome: outcome, Duration: now.Sub(d.lastTick)})
	}

	d.lastTick = now
	d.ticked = true
	d.last = res
	return res, hit
}

func (d *Driver) lookup(p pose.Pose) (raycache.Result, bool) {
	if d.thresholds.ShouldReuse(d.cache, p) {
		if res, ok := d.cache.Read(); ok {
			return res, true
		}
	}
	res := d.query(p)
	d.cache.Store(p, res)
	return res, false
}

// Last is the result returned by the most recent Tick.
func (d *Driver) Last() raycache.Result {
	return d.last
}

func (d *Driver) Cache() *raycache.Cache {
	return d.cache
}

// NotifyInput forwards a discrete input event to the gate. Call it before
// the Tick that should observe the event.
func (d *Driver) NotifyInput(source string) {
	d.gate.NotifyInputEvent(source)
}

// Reset invalidates the cache for reasons outside the input stream, such as
// a scene reload or a collider being removed.
func (d *Driver) Reset(reason string) {
	d.gate.NotifyExternalReset(reason)
}

func (d *Driver) ResetCounters() {
	d.monitor.ResetCounters()
}

func (d *Driver) Monitor() *perf.Monitor {
	return d.monitor
}

// Summary reduces the current statistics. Safe to call from another goroutine.
func (d *Driver) Summary() perf.Summary {
	s := d.reporter.Summary()
	input, reset := d.gate.Invalidations()
	s.Invalidations = input + reset
	return s
}

// Live is the allocation-free view for per-frame readers such as the overlay.
func (d *Driver) Live() perf.Live {
	l := d.monitor.Live()
	input, reset := d.gate.Invalidations()
	l.Invalidations = input + reset
	return l
}

// Report renders the summary and logs the headline numbers.
func (d *Driver) Report() string {
	s := d.Summary()
	d.logger.Info("raycast cache stats",
		zap.Float64("fps", s.FPS),
		zap.Duration("frame_avg", s.FrameAvg),
		zap.Duration("frame_max", s.FrameMax),
		zap.Duration("raycast_avg", s.RaycastAvg),
		zap.Duration("raycast_max", s.RaycastMax),
		zap.Uint64("hits", s.Hits),
		zap.Uint64("misses", s.Misses),
		zap.Float64("hit_rate", s.HitRate),
		zap.Uint64("invalidations", s.Invalidations),
	)
	return s.Render()
}
