package frame

import (
	"strings"
	"testing"
	"time"

	"raypick/internal/pose"
	"raypick/internal/raycache"

	"github.com/benbjohnson/clock"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeQuery counts calls and advances the mock clock to simulate query latency.
type fakeQuery struct {
	clock   *clock.Mock
	latency time.Duration
	calls   int
	result  raycache.Result
}

func (q *fakeQuery) query(p pose.Pose) raycache.Result {
	q.calls++
	q.clock.Add(q.latency)
	return q.result
}

func newTestDriver(opts ...Option) (*Driver, *fakeQuery, *clock.Mock) {
	mock := clock.NewMock()
	q := &fakeQuery{clock: mock, latency: 2 * time.Millisecond, result: raycache.Result{Entity: 5, Distance: 3, Hit: true}}
	d := New(q.query, append([]Option{WithClock(mock)}, opts...)...)
	return d, q, mock
}

func at(x float32) pose.Pose {
	return pose.Pose{Position: rl.Vector3{X: x}, Direction: rl.Vector3{Z: 1}}
}

func TestFirstTickQueries(t *testing.T) {
	d, q, _ := newTestDriver()

	res, hit := d.Tick(at(0))
	if hit {
		t.Error("First tick must miss")
	}
	if q.calls != 1 {
		t.Errorf("Expected 1 query, got %d", q.calls)
	}
	if res != q.result {
		t.Errorf("Expected %+v, got %+v", q.result, res)
	}
}

func TestStillCameraHits(t *testing.T) {
	d, q, mock := newTestDriver()

	d.Tick(at(0))
	for i := 0; i < 10; i++ {
		mock.Add(16 * time.Millisecond)
		res, hit := d.Tick(at(0))
		if !hit {
			t.Fatalf("Tick %d should hit", i)
		}
		if res != q.result {
			t.Errorf("Cached result mismatch: %+v", res)
		}
	}
	if q.calls != 1 {
		t.Errorf("Expected a single real query, got %d", q.calls)
	}
}

func TestDriftQueriesAgain(t *testing.T) {
	d, q, _ := newTestDriver()
	d.Tick(at(0))

	if _, hit := d.Tick(at(0.0005)); !hit {
		t.Error("Drift inside threshold should hit")
	}
	if _, hit := d.Tick(at(0.002)); hit {
		t.Error("Drift beyond threshold should miss")
	}
	if q.calls != 2 {
		t.Errorf("Expected 2 queries, got %d", q.calls)
	}
	if d.Cache().Pose() != at(0.002) {
		t.Error("Miss should store the new pose")
	}
}

func TestInputEventForcesQuery(t *testing.T) {
	d, q, _ := newTestDriver()
	d.Tick(at(0))

	d.NotifyInput("mouse")
	if _, hit := d.Tick(at(0)); hit {
		t.Error("Tick after input event should miss")
	}
	if _, hit := d.Tick(at(0)); !hit {
		t.Error("Only one miss should be enforced per event")
	}
	if q.calls != 2 {
		t.Errorf("Expected 2 queries, got %d", q.calls)
	}
}

func TestResetForcesQuery(t *testing.T) {
	d, q, _ := newTestDriver()
	d.Tick(at(0))
	d.Reset("scene reload")
	d.Tick(at(0))

	if q.calls != 2 {
		t.Errorf("Expected 2 queries, got %d", q.calls)
	}
	if s := d.Summary(); s.Invalidations != 1 {
		t.Errorf("Expected 1 invalidation, got %d", s.Invalidations)
	}
}

func TestTimingSamples(t *testing.T) {
	d, _, mock := newTestDriver(WithCapacity(8))

	d.Tick(at(0)) // miss, 2ms query
	mock.Add(14 * time.Millisecond)
	d.Tick(at(0)) // hit, no latency
	mock.Add(16 * time.Millisecond)
	d.Tick(at(1)) // miss, 2ms query

	snap := d.Monitor().Snapshot()
	wantRaycasts := []time.Duration{2 * time.Millisecond, 0, 2 * time.Millisecond}
	if diff := cmp.Diff(wantRaycasts, snap.Raycasts); diff != "" {
		t.Errorf("Raycast samples mismatch (-want +got):\n%s", diff)
	}
	wantFrames := []time.Duration{16 * time.Millisecond, 16 * time.Millisecond}
	if diff := cmp.Diff(wantFrames, snap.Frames); diff != "" {
		t.Errorf("Frame samples mismatch (-want +got):\n%s", diff)
	}
	if snap.Hits != 1 || snap.Misses != 2 {
		t.Errorf("Expected 1 hit / 2 misses, got %d / %d", snap.Hits, snap.Misses)
	}
}

func TestSummaryFPS(t *testing.T) {
	d, _, mock := newTestDriver()
	mock.Add(time.Second)
	for i := 0; i < 5; i++ {
		d.Tick(at(0))
		mock.Add(10 * time.Millisecond)
	}

	s := d.Summary()
	// the first frame sample also absorbs the 2ms miss latency
	if s.FrameMax != 12*time.Millisecond {
		t.Errorf("Expected max frame 12ms, got %v", s.FrameMax)
	}
	if s.FPS < 89 || s.FPS > 97 {
		t.Errorf("Expected ~95 FPS, got %v", s.FPS)
	}
}

func TestResetCounters(t *testing.T) {
	d, _, _ := newTestDriver()
	d.Tick(at(0))
	d.Tick(at(0))
	d.ResetCounters()

	if s := d.Summary(); s.Hits != 0 || s.Misses != 0 {
		t.Errorf("Expected counters reset, got %d / %d", s.Hits, s.Misses)
	}
}

func TestCustomThresholds(t *testing.T) {
	d, q, _ := newTestDriver(WithThresholds(raycache.Thresholds{Position: 1, Direction: 0.1}))
	d.Tick(at(0))
	d.Tick(at(0.5))
	if q.calls != 1 {
		t.Errorf("0.5 drift should hit with position threshold 1, got %d queries", q.calls)
	}
}

func TestReportText(t *testing.T) {
	d, _, mock := newTestDriver()
	d.Tick(at(0))
	mock.Add(16 * time.Millisecond)
	d.Tick(at(0))

	out := d.Report()
	for _, want := range []string{"Raycast cache", "Hit rate", "50.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}

func TestNoHitResultServedFromCache(t *testing.T) {
	d, q, _ := newTestDriver()
	q.result = raycache.Result{}
	d.Tick(at(0))
	res, hit := d.Tick(at(0))
	if !hit || res.Hit {
		t.Errorf("Expected cached no-hit result, got %+v hit=%v", res, hit)
	}
	if d.Last() != res {
		t.Error("Last should match the latest tick")
	}
}

func TestTickHitPathDoesNotAllocate(t *testing.T) {
	d := New(func(pose.Pose) raycache.Result { return raycache.Result{} })
	p := at(0)
	d.Tick(p)
	allocs := testing.AllocsPerRun(100, func() {
		d.Tick(p)
	})
	if allocs != 0 {
		t.Errorf("Hit path allocated %v times per tick", allocs)
	}
}

func TestReportLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d, _, _ := newTestDriver(WithLogger(zap.New(core)))
	d.Tick(at(0))
	d.Report()

	entries := logs.FilterMessage("raycast cache stats").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 stats log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["misses"]; got != uint64(1) {
		t.Errorf("Expected misses=1 in log, got %v", got)
	}
}

func TestTickAndLiveDoNotAllocate(t *testing.T) {
	d := New(func(pose.Pose) raycache.Result { return raycache.Result{} })
	p := at(0)
	d.Tick(p)
	allocs := testing.AllocsPerRun(100, func() {
		d.Tick(p)
		_ = d.Live()
	})
	if allocs != 0 {
		t.Errorf("Tick plus overlay read allocated %v times per frame", allocs)
	}
}

func TestLiveIncludesInvalidations(t *testing.T) {
	d, _, mock := newTestDriver()
	d.Tick(at(0))
	mock.Add(10 * time.Millisecond)
	d.NotifyInput("mouse")
	d.Tick(at(0))
	d.Reset("collider removed")

	live := d.Live()
	if live.Invalidations != 2 {
		t.Errorf("Expected 2 invalidations, got %d", live.Invalidations)
	}
	if live.Hits != 0 || live.Misses != 2 {
		t.Errorf("Expected 0 hits / 2 misses, got %d / %d", live.Hits, live.Misses)
	}
	// 10ms plus the 2ms query latency of the first tick
	if live.FrameMax != 12*time.Millisecond {
		t.Errorf("Expected 12ms frame, got %v", live.FrameMax)
	}
}
