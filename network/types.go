// Package network is the immutable road-graph data model (spec §3, §4.1):
// intersections, directed streets with lane-level turn permissions, and the
// read-only lookups the simulator, routing, and vehicle packages consume.
// Grounded in the teacher's entity/road and entity/lane packages, generalized
// away from their protobuf-backed map format to the plain planar/grid/
// imported graphs this spec requires.
package network

import "github.com/jakub-suliga/Smart-City-Traffic/geometry"

// Direction is one of the three turn directions a lane may permit.
type Direction int

const (
	Left Direction = iota
	Through
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "through"
	}
}

// Lane is one strand of a street, carrying the set of turn directions a
// vehicle may take from it onto the street's end intersection.
type Lane struct {
	Permitted map[Direction]bool
}

// Allows reports whether the lane permits turn direction d.
func (l Lane) Allows(d Direction) bool {
	return l.Permitted[d]
}

// NewLane builds a lane permitting exactly the given directions.
func NewLane(dirs ...Direction) Lane {
	m := make(map[Direction]bool, len(dirs))
	for _, d := range dirs {
		m[d] = true
	}
	return Lane{Permitted: m}
}

// Intersection is a graph node: a stable id, a projected 2-D position, and
// (optionally, set up by the caller after construction) a governing signal
// controller looked up by id elsewhere.
type Intersection struct {
	ID       int64
	Position geometry.Point
}

// Street is a directed graph edge: a polylined road segment with lanes.
type Street struct {
	ID         int64
	From, To   int64
	Polyline   []geometry.Point
	SpeedLimit float64 // m/s
	Lanes      []Lane

	// LengthOverride, if > 0, is used as the street's length instead of the
	// polyline's geometric arc length. The synthetic builder assigns travel
	// length independently of node-position spacing (spec §4.1); position
	// queries still interpolate along the real polyline.
	LengthOverride float64

	lineLengths []float64
	length      float64
}

// LaneCount returns the number of lanes on the street.
func (s *Street) LaneCount() int {
	return len(s.Lanes)
}

// Length returns the street's length in meters: LengthOverride when it is
// set, otherwise the polyline's arc length.
func (s *Street) Length() float64 {
	return s.length
}

// PositionAtS returns the 2-D point at cumulative arc length s along the
// street's polyline (spec §6.3), clamped into [0, polyline arc length].
// LengthOverride does not rescale arcLength; it is measured along the real
// polyline.
func (s *Street) PositionAtS(arcLength float64) geometry.Point {
	return geometry.PositionAtS(s.Polyline, s.lineLengths, arcLength)
}

// HeadingAtEnd returns the heading, in degrees, of the street's final
// polyline segment (used by the vehicle model's turn classification).
func (s *Street) HeadingAtEnd() float64 {
	n := len(s.Polyline)
	return geometry.HeadingDegrees(s.Polyline[n-2], s.Polyline[n-1])
}

// HeadingAtStart returns the heading, in degrees, of the street's first
// polyline segment.
func (s *Street) HeadingAtStart() float64 {
	return geometry.HeadingDegrees(s.Polyline[0], s.Polyline[1])
}

// finalize computes the derived polyline length fields. Called once by the
// package after a street's geometry is fixed, never exposed to callers.
func (s *Street) finalize() {
	s.lineLengths = geometry.PolylineLengths(s.Polyline)
	if s.LengthOverride > 0 {
		s.length = s.LengthOverride
	} else {
		s.length = geometry.PolylineLength(s.Polyline)
	}
}

// Edge is one entry of a node's outgoing adjacency: the neighbor node id,
// the traversal cost (street length), and the street id that realizes it.
type Edge struct {
	NeighborID int64
	Cost       float64
	StreetID   int64
}
