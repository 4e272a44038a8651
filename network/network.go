package network

import (
	"sort"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/jakub-suliga/Smart-City-Traffic/errs"
)

var log = logrus.WithField("module", "network")

// Network is the immutable road graph: read-only after construction (spec
// §3's "Lifecycle" and §5's concurrency model both rely on this).
type Network struct {
	intersections map[int64]*Intersection
	streets       map[int64]*Street
	adjacency     map[int64][]Edge // node id -> outgoing edges
}

// New validates and assembles a Network from raw intersections and streets.
// It enforces the invariants spec §3/§4.1 name: the graph is non-empty,
// every street's endpoints exist, every street's lane list is non-empty with
// at least one permitted direction per lane, and every polyline has at least
// two points.
func New(intersections []Intersection, streets []Street) (*Network, error) {
	if len(intersections) == 0 {
		return nil, errs.NewInputError("network must have at least one intersection")
	}

	nodes := make(map[int64]*Intersection, len(intersections))
	for i := range intersections {
		n := intersections[i]
		if _, dup := nodes[n.ID]; dup {
			return nil, errs.NewInputError("duplicate intersection id %d", n.ID)
		}
		nodes[n.ID] = &n
	}

	edgeList := make(map[int64]*Street, len(streets))
	adjacency := make(map[int64][]Edge, len(intersections))
	for id := range nodes {
		adjacency[id] = nil
	}
	for i := range streets {
		st := streets[i]
		if _, dup := edgeList[st.ID]; dup {
			return nil, errs.NewInputError("duplicate street id %d", st.ID)
		}
		if _, ok := nodes[st.From]; !ok {
			return nil, errs.NewInputError("street %d references unknown start node %d", st.ID, st.From)
		}
		if _, ok := nodes[st.To]; !ok {
			return nil, errs.NewInputError("street %d references unknown end node %d", st.ID, st.To)
		}
		if len(st.Polyline) < 2 {
			return nil, errs.NewInputError("street %d polyline needs at least 2 points", st.ID)
		}
		if len(st.Lanes) == 0 {
			return nil, errs.NewInputError("street %d needs at least 1 lane", st.ID)
		}
		for li, lane := range st.Lanes {
			if len(lane.Permitted) == 0 {
				return nil, errs.NewInputError("street %d lane %d has no permitted direction", st.ID, li)
			}
		}
		st.finalize()
		if st.length <= 0 {
			return nil, errs.NewInputError("street %d has non-positive length", st.ID)
		}
		edgeList[st.ID] = &st
		adjacency[st.From] = append(adjacency[st.From], Edge{NeighborID: st.To, Cost: st.length, StreetID: st.ID})
	}

	return &Network{intersections: nodes, streets: edgeList, adjacency: adjacency}, nil
}

// Intersection returns the intersection with the given id, or nil.
func (n *Network) Intersection(id int64) *Intersection {
	return n.intersections[id]
}

// Street returns the street with the given id, or nil.
func (n *Network) Street(id int64) *Street {
	return n.streets[id]
}

// Adjacency returns node id's outgoing edges: (neighbor id, cost, street id)
// triples, in the order streets were inserted at construction (stable
// iteration order, per spec §4.3's tie-breaking note).
func (n *Network) Adjacency(nodeID int64) []Edge {
	return n.adjacency[nodeID]
}

// Intersections returns every intersection, for read-only iteration (§6.1).
func (n *Network) Intersections() []*Intersection {
	return lo.Values(n.intersections)
}

// Streets returns every street, for read-only iteration (§6.1).
func (n *Network) Streets() []*Street {
	return lo.Values(n.streets)
}

// OutDegree returns the number of streets starting at node id.
func (n *Network) OutDegree(nodeID int64) int {
	return len(n.adjacency[nodeID])
}

// BoundaryNodes returns every node whose outgoing degree is <= 1 (spec
// §4.5/GLOSSARY's definition, used by the spawner to pick source/sink pairs),
// sorted ascending by id. Go's map iteration order is randomized per call;
// without sorting, a deterministically-seeded RNG index into this slice
// would still pick a non-deterministic node (spec §8's byte-identical
// trajectory property depends on this, the same way simulator.newBase sorts
// profileNames before indexing into it).
func (n *Network) BoundaryNodes() []int64 {
	out := make([]int64, 0, len(n.intersections))
	for id := range n.intersections {
		if n.OutDegree(id) <= 1 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllNodeIDs returns every intersection id, sorted ascending. Used as a
// fallback source/sink pool when BoundaryNodes is empty (e.g. a toroidal
// grid, where every node has outgoing degree 2 and so has no boundary).
func (n *Network) AllNodeIDs() []int64 {
	out := make([]int64, 0, len(n.intersections))
	for id := range n.intersections {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
