// Package physics is a small collider world used as the raycast backend.
// It only answers queries; it does not simulate.
package physics

import (
	"raypick/internal/pose"
	"raypick/internal/raycache"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Shape int

const (
	Box Shape = iota
	Sphere
)

func (s Shape) String() string {
	if s == Sphere {
		return "sphere"
	}
	return "box"
}

type Collider struct {
	Entity raycache.EntityID
	Name   string
	Shape  Shape
	Center rl.Vector3
	Size   rl.Vector3 // full extents, boxes only
	Radius float32    // spheres only
}

type World struct {
	colliders []Collider
	nextID    raycache.EntityID
}

func NewWorld() *World {
	return &World{nextID: 1}
}

func (w *World) AddBox(name string, center, size rl.Vector3) raycache.EntityID {
	return w.add(Collider{Name: name, Shape: Box, Center: center, Size: size})
}

func (w *World) AddSphere(name string, center rl.Vector3, radius float32) raycache.EntityID {
	return w.add(Collider{Name: name, Shape: Sphere, Center: center, Radius: radius})
}

func (w *World) add(c Collider) raycache.EntityID {
	c.Entity = w.nextID
	w.nextID++
	w.colliders = append(w.colliders, c)
	return c.Entity
}

// Remove deletes the collider for id. Callers holding a cached result for
// this world should invalidate it.
func (w *World) Remove(id raycache.EntityID) bool {
	for i, c := range w.colliders {
		if c.Entity == id {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) Len() int {
	return len(w.colliders)
}

func (w *World) Get(id raycache.EntityID) (Collider, bool) {
	for _, c := range w.colliders {
		if c.Entity == id {
			return c, true
		}
	}
	return Collider{}, false
}

func (w *World) Colliders() []Collider {
	return w.colliders
}

// CenterRay casts along the camera's view direction and converts the hit
// into a cache result. Nothing within maxDistance is a no-hit result.
func (w *World) CenterRay(p pose.Pose, maxDistance float32) raycache.Result {
	hit, ok := w.Raycast(p.Position, p.Direction, maxDistance)
	if !ok {
		return raycache.Result{}
	}
	return raycache.Result{Entity: hit.Entity, Distance: hit.Distance, Hit: true}
}
