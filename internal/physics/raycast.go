package physics

import (
	"math"

	"raypick/internal/raycache"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Entity   raycache.EntityID
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast checks every collider and returns the closest hit
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for i := range w.colliders {
		c := &w.colliders[i]
		var hitInfo RaycastHit
		var ok bool
		switch c.Shape {
		case Box:
			hitInfo, ok = raycastBox(origin, direction, NewAABBFromCenter(c.Center, c.Size), maxDistance)
		case Sphere:
			hitInfo, ok = raycastSphere(origin, direction, c.Center, c.Radius, maxDistance)
		}
		if ok && (!hit || hitInfo.Distance < closestHit.Distance) {
			closestHit = hitInfo
			closestHit.Entity = c.Entity
			hit = true
		}
	}

	return closestHit, hit
}

func raycastBox(origin, direction rl.Vector3, box AABB, maxDistance float32) (RaycastHit, bool) {
	min, max := box.Min, box.Max
	tmin := float32(-1e30)
	tmax := float32(1e30)

	// Slab test per axis
	axes := [3][4]float32{
		{origin.X, direction.X, min.X, max.X},
		{origin.Y, direction.Y, min.Y, max.Y},
		{origin.Z, direction.Z, min.Z, max.Z},
	}
	for _, a := range axes {
		o, d, lo, hi := a[0], a[1], a[2], a[3]
		if d == 0 {
			if o < lo || o > hi {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	// Starting inside the box reports the exit face
	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	var normal rl.Vector3
	epsilon := float32(0.001)
	if abs(point.X-min.X) < epsilon {
		normal = rl.Vector3{X: -1}
	} else if abs(point.X-max.X) < epsilon {
		normal = rl.Vector3{X: 1}
	} else if abs(point.Y-min.Y) < epsilon {
		normal = rl.Vector3{Y: -1}
	} else if abs(point.Y-max.Y) < epsilon {
		normal = rl.Vector3{Y: 1}
	} else if abs(point.Z-min.Z) < epsilon {
		normal = rl.Vector3{Z: -1}
	} else {
		normal = rl.Vector3{Z: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func raycastSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	sq := float32(math.Sqrt(float64(discriminant)))
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
