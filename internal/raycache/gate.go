package raycache

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type EventKind int

const (
	InputEvent EventKind = iota
	ExternalReset
)

func (k EventKind) String() string {
	switch k {
	case InputEvent:
		return "input"
	case ExternalReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is an explicit invalidation message. Source names the device or
// reason behind it and is only used for logging.
type Event struct {
	Kind   EventKind
	Source string
}

// Gate turns input events and resets into cache invalidations.
// Delivery is synchronous; there is no queue to drain. Deliver must be called
// from the tick loop; Invalidations may be read from anywhere.
type Gate struct {
	cache  *Cache
	logger *zap.Logger
	counts [2]atomic.Uint64
}

// NewGate wires a gate to c. A nil logger disables event logging.
func NewGate(c *Cache, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{cache: c, logger: logger}
}

func (g *Gate) Deliver(ev Event) {
	g.cache.Invalidate()
	if ev.Kind == InputEvent || ev.Kind == ExternalReset {
		g.counts[ev.Kind].Inc()
	}
	// Check keeps the disabled path allocation free
	if ce := g.logger.Check(zap.DebugLevel, "raycast cache invalidated"); ce != nil {
		ce.Write(zap.Stringer("kind", ev.Kind), zap.String("source", ev.Source))
	}
}

func (g *Gate) NotifyInputEvent(source string) {
	g.Deliver(Event{Kind: InputEvent, Source: source})
}

func (g *Gate) NotifyExternalReset(reason string) {
	g.Deliver(Event{Kind: ExternalReset, Source: reason})
}

// Invalidations returns the number of events delivered, by kind.
func (g *Gate) Invalidations() (input, reset uint64) {
	return g.counts[InputEvent].Load(), g.counts[ExternalReset].Load()
}
