// Package game runs the interactive raylib demo: a free camera in a collider
// scene, with the center ray served through the raycast cache.
package game

import (
	"fmt"

	"raypick/internal/camera"
	"raypick/internal/config"
	"raypick/internal/frame"
	"raypick/internal/physics"
	"raypick/internal/pose"
	"raypick/internal/raycache"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

type Game struct {
	Config    *config.Config
	World     *physics.World
	Camera    *camera.FPSCamera
	Driver    *frame.Driver
	Logger    *zap.Logger
	DebugMode bool

	// LoadWorld rebuilds the collider world on F5.
	LoadWorld func() (*physics.World, error)
}

func New(cfg *config.Config, loadWorld func() (*physics.World, error), logger *zap.Logger) (*Game, error) {
	w, err := loadWorld()
	if err != nil {
		return nil, err
	}
	g := &Game{
		Config:    cfg,
		World:     w,
		Camera:    camera.New(rl.Vector3{X: 10, Y: 5, Z: 10}),
		Logger:    logger,
		DebugMode: true,
		LoadWorld: loadWorld,
	}
	g.Driver = frame.New(g.query,
		frame.WithThresholds(cfg.CacheThresholds()),
		frame.WithCapacity(cfg.Stats.Capacity),
		frame.WithLogger(logger),
	)
	return g, nil
}

// query goes through g.World so a reloaded scene is picked up.
func (g *Game) query(p pose.Pose) raycache.Result {
	return g.World.CenterRay(p, g.Config.Raycast.MaxDistance)
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "raypick")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.DisableCursor()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	fmt.Println(g.Driver.Report())
}

func pollInput() camera.Input {
	return camera.Input{
		MouseDelta: rl.GetMouseDelta(),
		Forward:    rl.IsKeyDown(rl.KeyW),
		Back:       rl.IsKeyDown(rl.KeyS),
		Left:       rl.IsKeyDown(rl.KeyA),
		Right:      rl.IsKeyDown(rl.KeyD),
		Up:         rl.IsKeyDown(rl.KeySpace),
		Down:       rl.IsKeyDown(rl.KeyLeftControl),
		Click:      rl.IsMouseButtonPressed(rl.MouseLeftButton),
	}
}

func (g *Game) Update() {
	deltaTime := rl.GetFrameTime()

	// Input events reach the gate before this frame's tick
	in := pollInput()
	if in.Active() {
		g.Driver.NotifyInput("input")
	}
	g.Camera.Update(in, deltaTime)

	g.Driver.Tick(g.Camera.Pose())

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	// Stats report on demand
	if rl.IsKeyPressed(rl.KeyF3) {
		fmt.Println(g.Driver.Report())
	}
	if rl.IsKeyPressed(rl.KeyF4) {
		g.Driver.ResetCounters()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.reload()
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		g.removeTarget()
	}
}

// removeTarget deletes the collider under the crosshair. The cached result
// still names it, so the cache is reset before the next tick.
func (g *Game) removeTarget() bool {
	target := g.Driver.Last()
	if !target.Hit {
		return false
	}
	c, _ := g.World.Get(target.Entity)
	if !g.World.Remove(target.Entity) {
		return false
	}
	g.Driver.Reset("collider removed")
	g.Logger.Info("collider removed", zap.String("name", c.Name), zap.Uint64("entity", uint64(c.Entity)))
	return true
}

func (g *Game) reload() {
	w, err := g.LoadWorld()
	if err != nil {
		g.Logger.Warn("scene reload failed", zap.Error(err))
		return
	}
	g.World = w
	g.Driver.Reset("scene reload")
	g.Logger.Info("scene reloaded", zap.Int("colliders", w.Len()))
}

func (g *Game) Draw() {
	cam := g.Camera.GetRaylibCamera()
	target := g.Driver.Last()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(cam)
	for _, c := range g.World.Colliders() {
		color := rl.LightGray
		if target.Hit && c.Entity == target.Entity {
			color = rl.Orange
		}
		switch c.Shape {
		case physics.Box:
			rl.DrawCube(c.Center, c.Size.X, c.Size.Y, c.Size.Z, color)
			rl.DrawCubeWires(c.Center, c.Size.X, c.Size.Y, c.Size.Z, rl.DarkGray)
		case physics.Sphere:
			rl.DrawSphere(c.Center, c.Radius, color)
		}
	}
	rl.DrawGrid(40, 1)
	rl.EndMode3D()

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())

	// Crosshair
	rl.DrawCircle(int32(screenW/2), int32(screenH/2), 3, rl.White)

	rl.DrawText("WASD to move, Space/Ctrl up/down, Mouse to look", 10, 10, 20, rl.DarkGray)
	rl.DrawText("F1 overlay, F3 print stats, F4 reset counters, F5 reload scene, Del remove target", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)

	if !g.DebugMode {
		return
	}

	// Live, not Summary: this runs every frame
	s := g.Driver.Live()
	target := g.Driver.Last()
	lines := []string{
		fmt.Sprintf("Cache: %s", g.Driver.Cache().State()),
		fmt.Sprintf("Frame: %.2f ms avg / %.2f ms max (%d/%d)", ms(s.FrameAvg.Seconds()), ms(s.FrameMax.Seconds()), s.FrameSamples, s.Window),
		fmt.Sprintf("Raycast: %.3f ms avg / %.3f ms max", ms(s.RaycastAvg.Seconds()), ms(s.RaycastMax.Seconds())),
		fmt.Sprintf("Hit rate: %.1f%% (%d / %d)", s.HitRate()*100, s.Hits, s.Hits+s.Misses),
		fmt.Sprintf("Invalidations: %d", s.Invalidations),
	}
	if target.Hit {
		c, _ := g.World.Get(target.Entity)
		lines = append(lines, fmt.Sprintf("Target: %s @ %.2f", c.Name, target.Distance))
	} else {
		lines = append(lines, "Target: none")
	}

	panel := rl.Rectangle{X: screenW - 330, Y: 10, Width: 320, Height: float32(30 + 20*len(lines))}
	gui.Panel(panel, "Raycast cache")
	for i, line := range lines {
		gui.Label(rl.Rectangle{X: panel.X + 10, Y: panel.Y + 28 + float32(20*i), Width: panel.Width - 20, Height: 20}, line)
	}
}

func ms(seconds float64) float64 {
	return seconds * 1000
}
