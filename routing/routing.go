// Package routing computes shortest paths over a network.Network using a
// binary-heap Dijkstra (spec §4.3). Grounded in the gonum graph toolkit —
// the same graph/simple + graph/path pairing used for road-network shortest
// paths in the reference pack's simulation examples — rather than a
// hand-rolled heap, since gonum's DijkstraFrom already is that binary-heap
// implementation.
package routing

import (
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/jakub-suliga/Smart-City-Traffic/network"
)

// Router answers shortest-path queries over a fixed Network. Built once per
// Network and reused across spawns (the graph is immutable, spec §3).
type Router struct {
	net *network.Network
	g   *simple.WeightedDirectedGraph
	// edgeStreet maps (from,to) node pair to the street id realizing it.
	// Parallel edges aren't expected in a single network (one street per
	// directed node pair); if they occur the first one registered wins.
	// Streets are registered in ascending id order, so the choice is stable.
	edgeStreet map[[2]int64]int64
}

// NewRouter builds the weighted directed graph backing shortest-path
// queries from every street in net.
func NewRouter(net *network.Network) *Router {
	g := simple.NewWeightedDirectedGraph(0, 0)
	for _, in := range net.Intersections() {
		g.AddNode(simple.Node(in.ID))
	}
	edgeStreet := make(map[[2]int64]int64)
	streets := net.Streets()
	sort.Slice(streets, func(i, j int) bool { return streets[i].ID < streets[j].ID })
	for _, st := range streets {
		key := [2]int64{st.From, st.To}
		if _, dup := edgeStreet[key]; !dup {
			edgeStreet[key] = st.ID
			g.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(st.From),
				T: simple.Node(st.To),
				W: st.Length(),
			})
		}
	}
	return &Router{net: net, g: g, edgeStreet: edgeStreet}
}

// ShortestPath returns the ordered sequence of street ids from source to
// sink. If sink is unreachable, it returns an empty (non-nil) slice, not an
// error (spec §4.3/§7's RoutingUnreachable: "not an error").
func (r *Router) ShortestPath(source, sink int64) []int64 {
	if r.g.Node(source) == nil || r.g.Node(sink) == nil {
		return []int64{}
	}
	shortest := path.DijkstraFrom(simple.Node(source), r.g)
	nodes, _ := shortest.To(sink)
	if len(nodes) < 2 {
		return []int64{}
	}
	streets := make([]int64, 0, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		from, to := nodes[i].ID(), nodes[i+1].ID()
		id, ok := r.edgeStreet[[2]int64{from, to}]
		if !ok {
			// graph edge without a registered street should be impossible
			// given construction above; skip defensively rather than panic
			// mid-route.
			continue
		}
		streets = append(streets, id)
	}
	return streets
}
