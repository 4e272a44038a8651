// Package signal implements the per-intersection, lane-level traffic-light
// phase machine (spec §3, §4.2). Grounded in the teacher's
// entity/junction/trafficlight package and the original TrafficLight.py: a
// controller holds one global phase shared by every lane it governs.
package signal

import (
	"github.com/samber/lo"

	"github.com/jakub-suliga/Smart-City-Traffic/utils/config"
)

// Phase is a value in the fixed signal cycle.
type Phase int

const (
	Green Phase = iota
	Yellow
	Red
	RedYellow
)

// next returns the deterministic successor phase in the cycle
// GREEN -> YELLOW -> RED -> RED_YELLOW -> GREEN.
func (p Phase) next() Phase {
	switch p {
	case Green:
		return Yellow
	case Yellow:
		return Red
	case Red:
		return RedYellow
	default: // RedYellow
		return Green
	}
}

func (p Phase) String() string {
	switch p {
	case Green:
		return "GREEN"
	case Yellow:
		return "YELLOW"
	case Red:
		return "RED"
	case RedYellow:
		return "RED_YELLOW"
	default:
		return "UNKNOWN"
	}
}

// LaneKey identifies one incoming (street, lane) pair at an intersection.
type LaneKey struct {
	StreetID int64
	Lane     int
}

// Durations gives the length, in seconds, of each phase.
type Durations struct {
	Green, Yellow, Red, RedYellow float64
}

// DurationsFromConfig builds Durations from the loaded simulation config.
func DurationsFromConfig(c config.PhaseDurations) Durations {
	return Durations{Green: c.Green, Yellow: c.Yellow, Red: c.Red, RedYellow: c.RedYellow}
}

func (d Durations) of(p Phase) float64 {
	switch p {
	case Green:
		return d.Green
	case Yellow:
		return d.Yellow
	case Red:
		return d.Red
	default:
		return d.RedYellow
	}
}

// Period returns the total cycle length (sum of all four phase durations).
func (d Durations) Period() float64 {
	return d.Green + d.Yellow + d.Red + d.RedYellow
}

// Controller is a simple lane-level traffic light: every governed lane
// observes the same global phase (spec §3's "simple controller" invariant).
// The set of governed lanes is fixed at construction.
type Controller struct {
	durations   Durations
	governed    map[LaneKey]struct{}
	phase       Phase
	timeInPhase float64
}

// NewController creates a controller governing exactly the given lanes,
// starting in GREEN with zero elapsed time (matching spec scenario 5's use
// of an explicit starting phase via SetPhase, and the natural idle state
// otherwise).
func NewController(durations Durations, governed []LaneKey) *Controller {
	g := lo.SliceToMap(governed, func(k LaneKey) (LaneKey, struct{}) { return k, struct{}{} })
	return &Controller{durations: durations, governed: g, phase: Green}
}

// SetPhase forces the controller into phase p with the given elapsed time
// in that phase. Used by tests and by scenario setup (spec end-to-end
// scenario 5 starts an intersection in RED).
func (c *Controller) SetPhase(p Phase, timeInPhase float64) {
	c.phase = p
	c.timeInPhase = timeInPhase
}

// Advance accumulates dt into the current phase and rolls over to
// successive phases while the accumulated time reaches or exceeds their duration
// (spec §4.2). A single Advance call can cross more than one phase boundary
// if dt is large relative to phase durations.
func (c *Controller) Advance(dt float64) {
	c.timeInPhase += dt
	for c.timeInPhase >= c.durations.of(c.phase) {
		c.timeInPhase -= c.durations.of(c.phase)
		c.phase = c.phase.next()
	}
}

// Phase returns the controller's current global phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// TimeInPhase returns the elapsed time within the current phase.
func (c *Controller) TimeInPhase() float64 {
	return c.timeInPhase
}

// MayEnter reports whether a vehicle may enter the intersection from the
// given (street, lane): true when the lane isn't governed by this
// controller at all (a free intersection), or when the phase is GREEN or
// YELLOW. Admitting YELLOW lets vehicles already committed to the
// stopping-window clear the intersection, matching the driver model in
// spec §4.4 (which only decelerates while still approaching).
func (c *Controller) MayEnter(streetID int64, lane int) bool {
	if _, governed := c.governed[LaneKey{StreetID: streetID, Lane: lane}]; !governed {
		return true
	}
	return c.phase == Green || c.phase == Yellow
}
