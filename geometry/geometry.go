// Package geometry provides the small set of planar-geometry primitives the
// simulator needs: polyline arc length, position/heading interpolation along
// a polyline, and a segment-intersection test used by the synthetic network
// builder's planarity check.
package geometry

import "math"

// Point is a planar point in meters.
type Point struct {
	X, Y float64
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Blend linearly interpolates between a and b at parameter k in [0,1].
func Blend(a, b Point, k float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*k,
		Y: a.Y + (b.Y-a.Y)*k,
	}
}

// PolylineLengths returns the cumulative arc length at each vertex of line,
// starting at 0 for the first vertex. len(result) == len(line).
func PolylineLengths(line []Point) []float64 {
	lengths := make([]float64, len(line))
	for i := 1; i < len(line); i++ {
		lengths[i] = lengths[i-1] + Dist(line[i-1], line[i])
	}
	return lengths
}

// PolylineLength returns the total arc length of line.
func PolylineLength(line []Point) float64 {
	lengths := PolylineLengths(line)
	if len(lengths) == 0 {
		return 0
	}
	return lengths[len(lengths)-1]
}

// PositionAtS returns the point on line at cumulative arc length s, clamping
// s into [0, length]. lengths must be PolylineLengths(line).
func PositionAtS(line []Point, lengths []float64, s float64) Point {
	if len(line) == 0 {
		return Point{}
	}
	if s < lengths[0] {
		s = lengths[0]
	}
	if last := lengths[len(lengths)-1]; s > last {
		s = last
	}
	// find first index with lengths[i] >= s
	i := 0
	for i < len(lengths) && lengths[i] < s {
		i++
	}
	if i == 0 {
		return line[0]
	}
	if i >= len(line) {
		return line[len(line)-1]
	}
	sLow, sHigh := lengths[i-1], lengths[i]
	if sHigh == sLow {
		return line[i-1]
	}
	return Blend(line[i-1], line[i], (s-sLow)/(sHigh-sLow))
}

// HeadingDegrees returns the direction of the vector a->b in degrees, via
// atan2, in (-180, 180].
func HeadingDegrees(a, b Point) float64 {
	deg := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	return NormalizeDegrees(deg)
}

// NormalizeDegrees folds deg into (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}

// AngleDiffDegrees returns the signed difference (to - from), normalized
// into (-180, 180].
func AngleDiffDegrees(from, to float64) float64 {
	return NormalizeDegrees(to - from)
}

const collinearTolerance = 1e-9

// orientation returns the sign of the cross product (b-a) x (c-a): positive
// for counter-clockwise, negative for clockwise, zero for collinear (within
// collinearTolerance).
func orientation(a, b, c Point) float64 {
	v := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if math.Abs(v) < collinearTolerance {
		return 0
	}
	return v
}

// onSegment reports whether c, known to be collinear with a-b, lies within
// the bounding box of segment a-b.
func onSegment(a, b, c Point) bool {
	return math.Min(a.X, b.X)-collinearTolerance <= c.X && c.X <= math.Max(a.X, b.X)+collinearTolerance &&
		math.Min(a.Y, b.Y)-collinearTolerance <= c.Y && c.Y <= math.Max(a.Y, b.Y)+collinearTolerance
}

// SegmentsCross reports whether segment p1-p2 crosses segment q1-q2 at a
// point other than a shared endpoint. Shared endpoints (two edges meeting at
// a common node) are not considered a crossing; this is the standard
// orientation + on-segment test with a collinearity tolerance, used by the
// synthetic builder to reject edges that would overlap an existing one.
func SegmentsCross(p1, p2, q1, q2 Point) bool {
	// shared endpoints don't count as a crossing
	if (p1 == q1 || p1 == q2) || (p2 == q1 || p2 == q2) {
		// still reject true overlap (collinear + overlapping beyond the shared point)
		o1 := orientation(p1, p2, q1)
		o2 := orientation(p1, p2, q2)
		o3 := orientation(q1, q2, p1)
		o4 := orientation(q1, q2, p2)
		if o1 == 0 && o2 == 0 && o3 == 0 && o4 == 0 {
			return segmentsOverlapBeyondSharedPoint(p1, p2, q1, q2)
		}
		return false
	}

	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if ((o1 > 0) != (o2 > 0)) && o1 != 0 && o2 != 0 &&
		((o3 > 0) != (o4 > 0)) && o3 != 0 && o4 != 0 {
		return true
	}

	// collinear special cases
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	if o3 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	return false
}

// segmentsOverlapBeyondSharedPoint checks, for two collinear segments known
// to share an endpoint, whether they overlap along more than that point.
func segmentsOverlapBeyondSharedPoint(p1, p2, q1, q2 Point) bool {
	pts := []Point{p1, p2, q1, q2}
	for i, a := range pts {
		for j, b := range pts {
			if i == j || a == b {
				continue
			}
			mid := Blend(a, b, 0.5)
			if onSegment(p1, p2, mid) && onSegment(q1, q2, mid) {
				return true
			}
		}
	}
	return false
}
