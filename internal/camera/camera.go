package camera

import (
	"math"

	"raypick/internal/pose"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one frame of player input. It is filled either by polling
// raylib or by a scripted path, so the camera itself never touches devices.
type Input struct {
	MouseDelta rl.Vector2
	Forward    bool
	Back       bool
	Left       bool
	Right      bool
	Up         bool
	Down       bool

	// Click is a discrete button press. It does not move the camera.
	Click bool
}

// Active reports whether this frame carries any input event, including a
// click that leaves the camera where it is.
func (in Input) Active() bool {
	return in.MouseDelta.X != 0 || in.MouseDelta.Y != 0 ||
		in.Forward || in.Back || in.Left || in.Right || in.Up || in.Down || in.Click
}

// FPSCamera is a free-flying yaw/pitch camera.
type FPSCamera struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
	LookSpeed float32
}

func New(pos rl.Vector3) *FPSCamera {
	return &FPSCamera{
		Position:  pos,
		Yaw:       -135.0,
		Pitch:     -30.0,
		MoveSpeed: 8.0, // Units per second
		LookSpeed: 0.1,
	}
}

func (c *FPSCamera) Update(in Input, deltaTime float32) {
	// Mouse look
	c.Yaw += in.MouseDelta.X * c.LookSpeed
	c.Pitch -= in.MouseDelta.Y * c.LookSpeed

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	forward, right := c.getDirections()

	var moveDir rl.Vector3
	if in.Forward {
		moveDir = rl.Vector3Add(moveDir, forward)
	}
	if in.Back {
		moveDir = rl.Vector3Subtract(moveDir, forward)
	}
	if in.Left {
		moveDir = rl.Vector3Add(moveDir, right)
	}
	if in.Right {
		moveDir = rl.Vector3Subtract(moveDir, right)
	}
	if in.Up {
		moveDir.Y++
	}
	if in.Down {
		moveDir.Y--
	}

	// Normalize diagonal movement so you don't go faster diagonally
	if rl.Vector3Length(moveDir) > 0 {
		moveDir = rl.Vector3Normalize(moveDir)
	}

	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(moveDir, c.MoveSpeed*deltaTime))
}

func (c *FPSCamera) getDirections() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Y: 0,
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(math.Sin(yawRad)),
		Y: 0,
		Z: float32(-math.Cos(yawRad)),
	}
	return
}

// Pose is the snapshot handed to the frame driver each tick.
func (c *FPSCamera) Pose() pose.Pose {
	return pose.FromYawPitch(c.Position, c.Yaw, c.Pitch)
}

func (c *FPSCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     c.Pose().Target(),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
