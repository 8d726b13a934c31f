package raycache

import "raypick/internal/pose"

const (
	DefaultPositionThreshold  = 0.001
	DefaultDirectionThreshold = 0.0001 // radians
)

// Thresholds bound how far the camera may drift before a cached result is stale.
type Thresholds struct {
	Position  float64
	Direction float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Position:  DefaultPositionThreshold,
		Direction: DefaultDirectionThreshold,
	}
}

// Within reports whether current is strictly inside both thresholds of cached.
func (t Thresholds) Within(cached, current pose.Pose) bool {
	return pose.Distance(cached, current) < t.Position &&
		pose.Angle(cached, current) < t.Direction
}

// ShouldReuse reports whether the cached result may be served for current.
// A drift miss does not change the cache state; the caller overwrites it with Store.
func (t Thresholds) ShouldReuse(c *Cache, current pose.Pose) bool {
	if !c.valid {
		return false
	}
	return t.Within(c.lastPose, current)
}
