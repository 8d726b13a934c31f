// Package bench drives the frame pipeline along a scripted camera path so
// cache behaviour can be measured without a window.
package bench

import (
	"context"
	"math/rand"

	"raypick/internal/camera"
	"raypick/internal/frame"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Phase is a stretch of frames with one input pattern.
type Phase struct {
	Name   string
	Frames int
	// Input returns the player input for frame i of the phase.
	Input func(rng *rand.Rand, i int) camera.Input
	// Sway moves the camera without player input, e.g. idle head bob.
	Sway func(rng *rand.Rand, i int) rl.Vector3
}

func idle(*rand.Rand, int) camera.Input { return camera.Input{} }

// DefaultScript mixes still, swaying, walking and looking phases.
func DefaultScript(framesPerPhase int) []Phase {
	return []Phase{
		{Name: "idle", Frames: framesPerPhase, Input: idle},
		{
			Name:   "sway",
			Frames: framesPerPhase,
			Input:  idle,
			Sway: func(rng *rand.Rand, i int) rl.Vector3 {
				// well under the default position threshold
				return rl.Vector3{X: (rng.Float32() - 0.5) * 0.0002}
			},
		},
		{
			Name:   "walk",
			Frames: framesPerPhase,
			Input: func(rng *rand.Rand, i int) camera.Input {
				return camera.Input{Forward: true, Left: i%40 < 10}
			},
		},
		{
			Name:   "look",
			Frames: framesPerPhase,
			Input: func(rng *rand.Rand, i int) camera.Input {
				// the mouse only reports motion on some frames
				if rng.Intn(4) != 0 {
					return camera.Input{}
				}
				return camera.Input{MouseDelta: rl.Vector2{X: rng.Float32()*20 - 10, Y: rng.Float32()*6 - 3}}
			},
		},
		{
			Name:   "clicks",
			Frames: framesPerPhase,
			Input: func(rng *rand.Rand, i int) camera.Input {
				return camera.Input{Click: i%30 == 0}
			},
		},
	}
}

type Runner struct {
	Driver *frame.Driver
	Camera *camera.FPSCamera
	DT     float32
	Rand   *rand.Rand
	// OnPhase is called when a phase finishes, with the tick count so far.
	OnPhase func(name string, ticks int)
}

// Run plays every phase in order and returns the number of ticks driven.
// It stops early if ctx is cancelled.
func (r *Runner) Run(ctx context.Context, phases []Phase) (int, error) {
	ticks := 0
	for _, ph := range phases {
		for i := 0; i < ph.Frames; i++ {
			if ticks%64 == 0 {
				if err := ctx.Err(); err != nil {
					return ticks, err
				}
			}

			in := ph.Input(r.Rand, i)
			if in.Active() {
				r.Driver.NotifyInput(ph.Name)
			}
			r.Camera.Update(in, r.DT)

			p := r.Camera.Pose()
			if ph.Sway != nil {
				p.Position = rl.Vector3Add(p.Position, ph.Sway(r.Rand, i))
			}
			r.Driver.Tick(p)
			ticks++
		}
		if r.OnPhase != nil {
			r.OnPhase(ph.Name, ticks)
		}
	}
	return ticks, nil
}
