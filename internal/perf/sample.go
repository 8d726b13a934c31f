package perf

import "time"

type Kind int

const (
	FrameTime Kind = iota
	RaycastTime
)

func (k Kind) String() string {
	if k == RaycastTime {
		return "raycast"
	}
	return "frame"
}

type Outcome int

const (
	Miss Outcome = iota
	Hit
)

func (o Outcome) String() string {
	if o == Hit {
		return "hit"
	}
	return "miss"
}

// Sample is one timing measurement pushed by the frame driver.
type Sample struct {
	Kind     Kind
	Outcome  Outcome
	Duration time.Duration
}
