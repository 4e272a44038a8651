package network

import (
	"strings"

	"github.com/jakub-suliga/Smart-City-Traffic/geometry"
)

// ImportedNode is one node as delivered by an external geospatial source:
// an id and a projected metric position.
type ImportedNode struct {
	ID       int64
	Position geometry.Point
}

// ImportedEdge is one edge as delivered by an external geospatial source
// (spec §6.2). Fields reflect the raw tag values before interpretation:
// MaxSpeedKmh is 0 when the tag was absent or unparseable (defaults to 50),
// Lanes is 0 when absent (defaults to 1), TurnLanes is the raw
// pipe/semicolon-separated tag string, and Oneway controls whether a
// mirrored reverse street is synthesized.
type ImportedEdge struct {
	ID          int64
	From, To    int64
	Polyline    []geometry.Point
	MaxSpeedKmh float64
	Lanes       int
	TurnLanes   string
	Oneway      bool
}

// ImportGraph builds a Network from nodes/edges delivered by an external
// source, applying the §6.2 defaulting and turn-lane-parsing rules, and
// mirroring every non-oneway edge into a second, reverse-direction street.
func ImportGraph(nodes []ImportedNode, edges []ImportedEdge) (*Network, error) {
	intersections := make([]Intersection, len(nodes))
	for i, n := range nodes {
		intersections[i] = Intersection{ID: n.ID, Position: n.Position}
	}

	var streets []Street
	nextID := int64(0)
	for _, e := range edges {
		speedKmh := e.MaxSpeedKmh
		if speedKmh <= 0 {
			speedKmh = 50
		}
		laneCount := e.Lanes
		if laneCount <= 0 {
			laneCount = 1
		}
		lanes := parseTurnLanes(e.TurnLanes, laneCount)

		streets = append(streets, Street{
			ID:         nextID,
			From:       e.From,
			To:         e.To,
			Polyline:   e.Polyline,
			SpeedLimit: speedKmh * 1000 / 3600,
			Lanes:      lanes,
		})
		nextID++

		if !e.Oneway {
			streets = append(streets, Street{
				ID:         nextID,
				From:       e.To,
				To:         e.From,
				Polyline:   reversed(e.Polyline),
				SpeedLimit: speedKmh * 1000 / 3600,
				Lanes:      cloneLanes(lanes),
			})
			nextID++
		}
	}

	return New(intersections, streets)
}

// parseTurnLanes interprets the OSM-style `turn:lanes` tag: a `|`-separated
// list of lanes, each a `;`-separated set of tokens. A token containing
// "left"/"right"/"through" maps to that Direction; any other token is
// ignored (the source tag can carry values like "merge_to_left" this
// subset doesn't need to represent). A lane with no recognized token, or a
// lane index beyond the tag's coverage, is padded with {through} per §6.2.
func parseTurnLanes(tag string, laneCount int) []Lane {
	lanes := make([]Lane, laneCount)
	for i := range lanes {
		lanes[i] = NewLane(Through)
	}
	if tag == "" {
		return lanes
	}

	groups := strings.Split(tag, "|")
	for i := 0; i < len(groups) && i < laneCount; i++ {
		tokens := strings.Split(groups[i], ";")
		var dirs []Direction
		for _, tok := range tokens {
			tok = strings.ToLower(strings.TrimSpace(tok))
			switch {
			case strings.Contains(tok, "left"):
				dirs = append(dirs, Left)
			case strings.Contains(tok, "right"):
				dirs = append(dirs, Right)
			case strings.Contains(tok, "through"):
				dirs = append(dirs, Through)
			}
		}
		if len(dirs) == 0 {
			dirs = []Direction{Through}
		}
		lanes[i] = NewLane(dirs...)
	}
	return lanes
}

func reversed(line []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(line))
	for i, p := range line {
		out[len(line)-1-i] = p
	}
	return out
}

func cloneLanes(lanes []Lane) []Lane {
	out := make([]Lane, len(lanes))
	for i, l := range lanes {
		m := make(map[Direction]bool, len(l.Permitted))
		for k, v := range l.Permitted {
			m[k] = v
		}
		out[i] = Lane{Permitted: m}
	}
	return out
}
