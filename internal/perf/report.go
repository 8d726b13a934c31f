package perf

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
)

// Summary is the reduced view of a Snapshot.
type Summary struct {
	FrameSamples   int
	RaycastSamples int

	FrameAvg time.Duration
	FrameMax time.Duration
	FrameP95 time.Duration
	FPS      float64

	RaycastAvg time.Duration
	RaycastMax time.Duration

	Hits          uint64
	Misses        uint64
	HitRate       float64
	Invalidations uint64
}

// Summarize reduces a snapshot. Empty windows produce zero values.
func Summarize(s Snapshot) Summary {
	sum := Summary{
		FrameSamples:   len(s.Frames),
		RaycastSamples: len(s.Raycasts),
		Hits:           s.Hits,
		Misses:         s.Misses,
		HitRate:        HitRate(s.Hits, s.Misses),
	}

	frames := toFloat(s.Frames)
	sum.FrameAvg, sum.FrameMax = meanMax(frames)
	if p95, err := stats.Percentile(frames, 95); err == nil {
		sum.FrameP95 = time.Duration(p95)
	} else {
		// too few samples to interpolate
		sum.FrameP95 = sum.FrameMax
	}
	if sum.FrameAvg > 0 {
		sum.FPS = 1 / sum.FrameAvg.Seconds()
	}

	sum.RaycastAvg, sum.RaycastMax = meanMax(toFloat(s.Raycasts))
	return sum
}

func toFloat(d []time.Duration) stats.Float64Data {
	out := make(stats.Float64Data, len(d))
	for i, v := range d {
		out[i] = float64(v)
	}
	return out
}

func meanMax(data stats.Float64Data) (avg, max time.Duration) {
	if data.Len() == 0 {
		return 0, 0
	}
	mean, err := data.Mean()
	if err != nil {
		return 0, 0
	}
	m, err := data.Max()
	if err != nil {
		return 0, 0
	}
	return time.Duration(mean), time.Duration(m)
}

const noData = "no data"

func ms(d time.Duration, samples int) string {
	if samples == 0 {
		return noData
	}
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}

// Render formats the summary as a plain-text table.
func (s Summary) Render() string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle("Raycast cache")
	t.AppendHeader(table.Row{"Metric", "Avg", "Max", "P95"})
	t.AppendRow(table.Row{
		fmt.Sprintf("Frame time (%d)", s.FrameSamples),
		ms(s.FrameAvg, s.FrameSamples), ms(s.FrameMax, s.FrameSamples), ms(s.FrameP95, s.FrameSamples),
	})
	t.AppendRow(table.Row{
		fmt.Sprintf("Raycast time (%d)", s.RaycastSamples),
		ms(s.RaycastAvg, s.RaycastSamples), ms(s.RaycastMax, s.RaycastSamples), "",
	})
	t.AppendSeparator()

	fps := noData
	if s.FPS > 0 {
		fps = fmt.Sprintf("%.1f", s.FPS)
	}
	t.AppendRow(table.Row{"FPS", fps, "", ""})

	rate := noData
	if s.Hits+s.Misses > 0 {
		rate = fmt.Sprintf("%.1f%% (%d hits / %d misses)", s.HitRate*100, s.Hits, s.Misses)
	}
	t.AppendRow(table.Row{"Hit rate", rate, "", ""})
	t.AppendRow(table.Row{"Invalidations", s.Invalidations, "", ""})
	return t.Render()
}

func (s Summary) String() string {
	return s.Render()
}

// Reporter reduces a monitor on demand. It never writes to the monitor.
type Reporter struct {
	monitor *Monitor
}

func NewReporter(m *Monitor) *Reporter {
	return &Reporter{monitor: m}
}

func (r *Reporter) Summary() Summary {
	return Summarize(r.monitor.Snapshot())
}

func (r *Reporter) Report() string {
	return r.Summary().Render()
}
