package physics

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Gallery builds the built-in scene used when no scene file is configured:
// a floor and a ring of crates and orbs around the origin.
func Gallery() *World {
	w := NewWorld()
	w.AddBox("Floor", rl.Vector3{Y: -0.5}, rl.Vector3{X: 40, Y: 1, Z: 40})

	const ring = 12
	for i := 0; i < ring; i++ {
		angle := 2 * math.Pi * float64(i) / ring
		x := float32(8 * math.Cos(angle))
		z := float32(8 * math.Sin(angle))
		if i%2 == 0 {
			w.AddBox(fmt.Sprintf("Crate_%d", i), rl.Vector3{X: x, Y: 0.5, Z: z}, rl.Vector3{X: 1, Y: 1, Z: 1})
		} else {
			w.AddSphere(fmt.Sprintf("Orb_%d", i), rl.Vector3{X: x, Y: 1, Z: z}, 0.75)
		}
	}
	return w
}
