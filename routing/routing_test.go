package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakub-suliga/Smart-City-Traffic/geometry"
	"github.com/jakub-suliga/Smart-City-Traffic/network"
	"github.com/jakub-suliga/Smart-City-Traffic/routing"
)

func lineStreet(id, from, to int64, length float64) network.Street {
	return network.Street{
		ID:   id,
		From: from,
		To:   to,
		Polyline: []geometry.Point{
			{X: 0, Y: 0},
			{X: length, Y: 0},
		},
		SpeedLimit: 20,
		Lanes:      []network.Lane{network.NewLane(network.Through)},
	}
}

func chainNetwork(t *testing.T) *network.Network {
	t.Helper()
	nodes := []network.Intersection{{ID: 0}, {ID: 1}, {ID: 2}, {ID: 3}}
	streets := []network.Street{
		lineStreet(0, 0, 1, 100),
		lineStreet(1, 1, 2, 50),
		lineStreet(2, 1, 3, 500), // longer alternative, should lose
		lineStreet(3, 2, 3, 50),
	}
	net, err := network.New(nodes, streets)
	assert.NoError(t, err)
	return net
}

func TestShortestPathPrefersLowerCost(t *testing.T) {
	net := chainNetwork(t)
	r := routing.NewRouter(net)
	got := r.ShortestPath(0, 3)
	assert.Equal(t, []int64{0, 1, 3}, got)
}

func TestShortestPathUnreachableReturnsEmpty(t *testing.T) {
	nodes := []network.Intersection{{ID: 0}, {ID: 1}}
	streets := []network.Street{} // no edges at all
	net, err := network.New(nodes, streets)
	assert.NoError(t, err)

	r := routing.NewRouter(net)
	got := r.ShortestPath(0, 1)
	assert.Empty(t, got)
}

func TestShortestPathSameSourceAndSink(t *testing.T) {
	net := chainNetwork(t)
	r := routing.NewRouter(net)
	got := r.ShortestPath(0, 0)
	assert.Empty(t, got)
}
