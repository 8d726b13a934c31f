package perf

import (
	"sync"
	"time"
)

// Monitor owns the frame and raycast windows plus lifetime hit/miss counters.
//
// The tick loop is the only writer. The mutex exists so that readers on
// other goroutines (metrics scrapes, an overlay) can take a Snapshot; all
// reductions happen on the copy, outside the lock.
type Monitor struct {
	mu       sync.Mutex
	frames   *Ring[time.Duration]
	raycasts *Ring[time.Duration]
	hits     uint64
	misses   uint64
}

func NewMonitor(capacity int) *Monitor {
	return &Monitor{
		frames:   NewRing[time.Duration](capacity),
		raycasts: NewRing[time.Duration](capacity),
	}
}

// Record pushes a sample into the window for its kind. Raycast samples also
// count towards the hit/miss counters; frame samples do not, so a tick is
// counted once.
func (m *Monitor) Record(s Sample) {
	m.mu.Lock()
	switch s.Kind {
	case FrameTime:
		m.frames.Push(s.Duration)
	case RaycastTime:
		m.raycasts.Push(s.Duration)
		if s.Outcome == Hit {
			m.hits++
		} else {
			m.misses++
		}
	}
	m.mu.Unlock()
}

// ResetCounters zeroes hits and misses. The windows are left untouched.
func (m *Monitor) ResetCounters() {
	m.mu.Lock()
	m.hits, m.misses = 0, 0
	m.mu.Unlock()
}

func (m *Monitor) Counters() (hits, misses uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

// Live is the running view the overlay reads every frame. Unlike Summary it
// is computed in place, without copying the windows.
type Live struct {
	Window         int
	FrameSamples   int
	RaycastSamples int
	FrameAvg       time.Duration
	FrameMax       time.Duration
	RaycastAvg     time.Duration
	RaycastMax     time.Duration
	Hits           uint64
	Misses         uint64
	Invalidations  uint64
}

// FPS is 1/FrameAvg, or 0 with no frame samples.
func (l Live) FPS() float64 {
	if l.FrameAvg <= 0 {
		return 0
	}
	return 1 / l.FrameAvg.Seconds()
}

func (l Live) HitRate() float64 {
	return HitRate(l.Hits, l.Misses)
}

// Live reduces both windows under the lock. It does not allocate.
func (m *Monitor) Live() Live {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Live{
		Window:         m.frames.Cap(),
		FrameSamples:   m.frames.Len(),
		RaycastSamples: m.raycasts.Len(),
		FrameAvg:       time.Duration(m.frames.Average()),
		FrameMax:       m.frames.Max(),
		RaycastAvg:     time.Duration(m.raycasts.Average()),
		RaycastMax:     m.raycasts.Max(),
		Hits:           m.hits,
		Misses:         m.misses,
	}
}

// Snapshot is an immutable copy of the monitor state.
type Snapshot struct {
	Frames   []time.Duration
	Raycasts []time.Duration
	Hits     uint64
	Misses   uint64
}

func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Frames:   m.frames.Snapshot(),
		Raycasts: m.raycasts.Snapshot(),
		Hits:     m.hits,
		Misses:   m.misses,
	}
}

// HitRate is hits/(hits+misses), or 0 before any raycast sample.
func HitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
