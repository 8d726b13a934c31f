package perf

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMonitorCountsOnlyRaycastSamples(t *testing.T) {
	m := NewMonitor(10)
	m.Record(Sample{Kind: FrameTime, Outcome: Hit, Duration: time.Millisecond})
	m.Record(Sample{Kind: RaycastTime, Outcome: Hit, Duration: time.Microsecond})
	m.Record(Sample{Kind: RaycastTime, Outcome: Miss, Duration: time.Millisecond})

	hits, misses := m.Counters()
	if hits != 1 || misses != 1 {
		t.Errorf("Expected 1 hit / 1 miss, got %d / %d", hits, misses)
	}
}

func TestMonitorCountersOutliveEviction(t *testing.T) {
	m := NewMonitor(2)
	for i := 0; i < 10; i++ {
		m.Record(Sample{Kind: RaycastTime, Outcome: Hit})
	}
	snap := m.Snapshot()
	if len(snap.Raycasts) != 2 {
		t.Errorf("Window should hold 2 samples, got %d", len(snap.Raycasts))
	}
	if snap.Hits != 10 {
		t.Errorf("Counter should be lifetime, got %d", snap.Hits)
	}
}

func TestMonitorResetCounters(t *testing.T) {
	m := NewMonitor(4)
	m.Record(Sample{Kind: RaycastTime, Outcome: Miss, Duration: time.Millisecond})
	m.ResetCounters()

	hits, misses := m.Counters()
	if hits != 0 || misses != 0 {
		t.Errorf("Expected zero counters, got %d / %d", hits, misses)
	}
	if len(m.Snapshot().Raycasts) != 1 {
		t.Error("ResetCounters should not clear the window")
	}
}

func TestHitRate(t *testing.T) {
	if HitRate(0, 0) != 0 {
		t.Error("Hit rate with no samples should be 0")
	}
	if HitRate(3, 1) != 0.75 {
		t.Errorf("Expected 0.75, got %v", HitRate(3, 1))
	}
}

func TestHitRateNotRetroactive(t *testing.T) {
	m := NewMonitor(3)
	r := NewReporter(m)
	for i := 0; i < 3; i++ {
		m.Record(Sample{Kind: RaycastTime, Outcome: Hit})
	}
	m.Record(Sample{Kind: RaycastTime, Outcome: Miss})

	first := r.Summary()
	if first.HitRate != 0.75 {
		t.Fatalf("Expected 0.75, got %v", first.HitRate)
	}

	for i := 0; i < 4; i++ {
		m.Record(Sample{Kind: RaycastTime, Outcome: Miss})
	}
	if first.HitRate != 0.75 {
		t.Error("Earlier summary changed after further samples")
	}
	if got := r.Summary().HitRate; got != 3.0/8.0 {
		t.Errorf("Expected 3/8, got %v", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := NewReporter(NewMonitor(60)).Summary()
	if s.FPS != 0 || s.FrameAvg != 0 || s.FrameMax != 0 || s.HitRate != 0 {
		t.Errorf("Empty summary should be all zero, got %+v", s)
	}
	out := s.Render()
	if !strings.Contains(out, "no data") {
		t.Errorf("Empty report should say no data:\n%s", out)
	}
}

func TestSummarizeScenario(t *testing.T) {
	ms := time.Millisecond
	m := NewMonitor(3)
	for _, d := range []time.Duration{10 * ms, 20 * ms, 30 * ms, 5 * ms} {
		m.Record(Sample{Kind: FrameTime, Duration: d})
	}

	s := NewReporter(m).Summary()
	if s.FrameSamples != 3 {
		t.Errorf("Expected 3 frame samples, got %d", s.FrameSamples)
	}
	if d := s.FrameAvg - 18333333; d < -1 || d > 1 {
		t.Errorf("Expected ~18.33ms, got %v", s.FrameAvg)
	}
	if s.FrameMax != 30*ms {
		t.Errorf("Expected max 30ms, got %v", s.FrameMax)
	}
	if s.FPS < 54.5 || s.FPS > 54.6 {
		t.Errorf("Expected ~54.5 FPS, got %v", s.FPS)
	}
}

func TestSummarySingleSampleP95(t *testing.T) {
	m := NewMonitor(10)
	m.Record(Sample{Kind: FrameTime, Duration: 16 * time.Millisecond})
	s := NewReporter(m).Summary()
	if s.FrameP95 != 16*time.Millisecond {
		t.Errorf("Expected p95 to fall back to max, got %v", s.FrameP95)
	}
}

func TestReportContents(t *testing.T) {
	m := NewMonitor(10)
	m.Record(Sample{Kind: FrameTime, Duration: 10 * time.Millisecond})
	m.Record(Sample{Kind: RaycastTime, Outcome: Hit, Duration: time.Microsecond})
	m.Record(Sample{Kind: RaycastTime, Outcome: Miss, Duration: 2 * time.Millisecond})

	out := NewReporter(m).Report()
	for _, want := range []string{"Frame time", "Raycast time", "FPS", "100.0", "50.0%", "1 hits / 1 misses"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}

func TestMonitorConcurrentSnapshot(t *testing.T) {
	m := NewMonitor(60)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = m.Snapshot()
		}
	}()
	for i := 0; i < 1000; i++ {
		m.Record(Sample{Kind: FrameTime, Duration: time.Millisecond})
	}
	wg.Wait()
	if len(m.Snapshot().Frames) != 60 {
		t.Error("Expected a full window")
	}
}

func TestLiveMatchesSummary(t *testing.T) {
	m := NewMonitor(3)
	for _, ms := range []time.Duration{10, 20, 30, 5} {
		m.Record(Sample{Kind: FrameTime, Duration: ms * time.Millisecond})
		m.Record(Sample{Kind: RaycastTime, Outcome: Hit, Duration: ms * time.Microsecond})
	}
	m.Record(Sample{Kind: RaycastTime, Outcome: Miss, Duration: time.Microsecond})

	live := m.Live()
	sum := NewReporter(m).Summary()
	if live.FrameAvg != sum.FrameAvg || live.FrameMax != sum.FrameMax {
		t.Errorf("Frame avg/max %v/%v, summary has %v/%v", live.FrameAvg, live.FrameMax, sum.FrameAvg, sum.FrameMax)
	}
	if live.RaycastAvg != sum.RaycastAvg || live.RaycastMax != sum.RaycastMax {
		t.Errorf("Raycast avg/max %v/%v, summary has %v/%v", live.RaycastAvg, live.RaycastMax, sum.RaycastAvg, sum.RaycastMax)
	}
	if live.Window != 3 || live.FrameSamples != 3 || live.RaycastSamples != 3 {
		t.Errorf("Expected 3 samples per window, got %d / %d", live.FrameSamples, live.RaycastSamples)
	}
	if live.Hits != 4 || live.Misses != 1 || live.HitRate() != 0.8 {
		t.Errorf("Expected 4 hits / 1 miss at 0.8, got %d / %d at %v", live.Hits, live.Misses, live.HitRate())
	}
	if live.FPS() != sum.FPS {
		t.Errorf("FPS %v, summary has %v", live.FPS(), sum.FPS)
	}
}

func TestLiveEmpty(t *testing.T) {
	live := NewMonitor(10).Live()
	if live.FrameAvg != 0 || live.FrameMax != 0 || live.FPS() != 0 || live.HitRate() != 0 {
		t.Errorf("Empty monitor should read zero, got %+v", live)
	}
}

func TestRecordAndLiveDoNotAllocate(t *testing.T) {
	m := NewMonitor(60)
	allocs := testing.AllocsPerRun(200, func() {
		m.Record(Sample{Kind: FrameTime, Duration: 16 * time.Millisecond})
		m.Record(Sample{Kind: RaycastTime, Outcome: Hit, Duration: time.Microsecond})
		_ = m.Live()
	})
	if allocs != 0 {
		t.Errorf("Per-frame Record+Live allocated %v times", allocs)
	}
}
