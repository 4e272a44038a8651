// Package clock tracks simulated time as the Simulator advances tick by
// tick. Adapted from the teacher's Clock, with the RPC/distributed-sync
// surface dropped (this simulator is single-process per spec §5/§1).
package clock

import "fmt"

// Clock accumulates simulated seconds across ticks of fixed size DT.
type Clock struct {
	DT   float64 // tick size in seconds
	T    float64 // total simulated seconds elapsed
	Step int64   // number of ticks advanced
}

// New creates a Clock with the given tick size.
func New(dt float64) *Clock {
	return &Clock{DT: dt}
}

// Advance moves the clock forward by one tick.
func (c *Clock) Advance() {
	c.T += c.DT
	c.Step++
}

// String renders the elapsed time as HH:MM:SS.
func (c *Clock) String() string {
	t := c.T
	h := int(t / 3600)
	t -= float64(h * 3600)
	m := int(t / 60)
	t -= float64(m * 60)
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
