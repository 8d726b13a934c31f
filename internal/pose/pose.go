package pose

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Pose is a camera snapshot taken once per tick.
// Direction is expected to be a unit vector.
type Pose struct {
	Position  rl.Vector3
	Direction rl.Vector3
}

func New(position, direction rl.Vector3) Pose {
	return Pose{Position: position, Direction: rl.Vector3Normalize(direction)}
}

// FromYawPitch builds a pose from angles in degrees, using the same
// convention as the FPS camera (yaw around Y, pitch up positive).
func FromYawPitch(position rl.Vector3, yaw, pitch float32) Pose {
	yawRad := float64(yaw) * math.Pi / 180
	pitchRad := float64(pitch) * math.Pi / 180
	dir := rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	return Pose{Position: position, Direction: dir}
}

// Target is the point one unit ahead of the camera.
func (p Pose) Target() rl.Vector3 {
	return rl.Vector3Add(p.Position, p.Direction)
}

// Distance is the Euclidean distance between two positions.
// Computed in float64 so sub-millimetre thresholds stay meaningful.
func Distance(a, b Pose) float64 {
	dx := float64(a.Position.X) - float64(b.Position.X)
	dy := float64(a.Position.Y) - float64(b.Position.Y)
	dz := float64(a.Position.Z) - float64(b.Position.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Angle returns the angle in radians between the two directions.
// atan2 of cross and dot keeps precision for nearly parallel vectors,
// where acos of the dot product collapses to zero.
func Angle(a, b Pose) float64 {
	ax, ay, az := float64(a.Direction.X), float64(a.Direction.Y), float64(a.Direction.Z)
	bx, by, bz := float64(b.Direction.X), float64(b.Direction.Y), float64(b.Direction.Z)

	cx := ay*bz - az*by
	cy := az*bx - ax*bz
	cz := ax*by - ay*bx
	cross := math.Sqrt(cx*cx + cy*cy + cz*cz)
	dot := ax*bx + ay*by + az*bz
	return math.Atan2(cross, dot)
}
