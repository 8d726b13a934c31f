// Package raycache decides, once per tick, whether the previous center-ray
// query can be reused for the current camera pose.
package raycache

import "raypick/internal/pose"

// EntityID identifies whatever the query collaborator reports as hit.
// Zero means no entity.
type EntityID uint64

// Result is produced by the query collaborator and stored verbatim.
// A ray that hits nothing is a valid Result with Hit=false.
type Result struct {
	Entity   EntityID
	Distance float32
	Hit      bool
}

type State int

const (
	Invalid State = iota
	Valid
)

func (s State) String() string {
	if s == Valid {
		return "valid"
	}
	return "invalid"
}

// Cache holds the single most recent pose/result pair.
// It is owned by the tick loop and is not safe for concurrent use.
type Cache struct {
	lastPose pose.Pose
	result   Result
	valid    bool
}

// New returns an empty cache. The first evaluation is always a miss.
func New() *Cache {
	return &Cache{}
}

// Read returns the stored result only while the cache is valid.
func (c *Cache) Read() (Result, bool) {
	if !c.valid {
		return Result{}, false
	}
	return c.result, true
}

// Store records the outcome of a real query and marks the cache valid.
func (c *Cache) Store(p pose.Pose, r Result) {
	c.lastPose = p
	c.result = r
	c.valid = true
}

// Invalidate forces the next evaluation to miss. Pose and result are kept.
func (c *Cache) Invalidate() {
	c.valid = false
}

func (c *Cache) State() State {
	if c.valid {
		return Valid
	}
	return Invalid
}

// Pose is the pose of the last stored query, valid or not.
func (c *Cache) Pose() pose.Pose {
	return c.lastPose
}
