// Package simulator owns the Network, Signals, and Vehicle collection and
// drives the per-tick orchestration spec §4.5 describes: advance signals,
// bucket and sort vehicles by lane, update with leader, drop terminated
// vehicles, spawn replacements. Grounded in the teacher's ecosim package's
// prepare/update staging, generalized to this spec's simpler single-phase
// tick (no distributed sync, no economy subsystems).
package simulator

import (
	"sort"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/jakub-suliga/Smart-City-Traffic/clock"
	"github.com/jakub-suliga/Smart-City-Traffic/network"
	"github.com/jakub-suliga/Smart-City-Traffic/routing"
	"github.com/jakub-suliga/Smart-City-Traffic/signal"
	"github.com/jakub-suliga/Smart-City-Traffic/utils/config"
	"github.com/jakub-suliga/Smart-City-Traffic/utils/randengine"
	"github.com/jakub-suliga/Smart-City-Traffic/vehicle"
)

var log = logrus.WithField("module", "simulator")

// Simulator is the top-level owner of simulation state (spec §3's
// "Ownership" section): the Network and Vehicle collection are exclusively
// its own, vehicles hold only ids into it.
type Simulator struct {
	Network *network.Network
	Router  *routing.Router
	Signals map[int64]*signal.Controller
	Clock   *clock.Clock

	vehicles      []*vehicle.Vehicle
	nextVehicleID int64

	rng                *randengine.Engine
	profileNames       []string
	profiles           map[string]config.VehicleProfile
	respawnProbability float64
	seedSpawns         int
}

// newBase wires up routing and signal controllers common to every
// construction path, once the network itself is built.
func newBase(net *network.Network, cfg config.Config, seed uint64) *Simulator {
	durations := signal.DurationsFromConfig(cfg.Phases)
	governedByIntersection := make(map[int64][]signal.LaneKey)
	for _, st := range net.Streets() {
		for lane := range st.Lanes {
			governedByIntersection[st.To] = append(governedByIntersection[st.To], signal.LaneKey{StreetID: st.ID, Lane: lane})
		}
	}
	signals := make(map[int64]*signal.Controller, len(governedByIntersection))
	for intersectionID, lanes := range governedByIntersection {
		signals[intersectionID] = signal.NewController(durations, lanes)
	}

	names := make([]string, 0, len(cfg.VehicleProfiles))
	for name := range cfg.VehicleProfiles {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic iteration order for uniform profile draws

	return &Simulator{
		Network:            net,
		Router:             routing.NewRouter(net),
		Signals:            signals,
		Clock:              clock.New(0),
		rng:                randengine.New(seed),
		profileNames:       names,
		profiles:           cfg.VehicleProfiles,
		respawnProbability: cfg.Control.RespawnProbability,
		seedSpawns:         cfg.Control.SeedSpawns,
	}
}

// NewFromSynthetic builds a Simulator over a randomly generated planar
// network (spec §6.1's new_from_synthetic).
func NewFromSynthetic(cfg config.Config, n, e int, seed uint64) (*Simulator, error) {
	net, err := network.BuildSynthetic(network.SyntheticParams{
		N: n, E: e, Seed: seed,
		MinLengthM:     cfg.Synthetic.MinLengthM,
		MaxLengthM:     cfg.Synthetic.MaxLengthM,
		MinSpeedKmh:    cfg.Synthetic.MinSpeedKmh,
		MaxSpeedKmh:    cfg.Synthetic.MaxSpeedKmh,
		BoxSizeM:       cfg.Synthetic.BoxSizeM,
		PlacementTries: cfg.Synthetic.PlacementTries,
	})
	if net == nil {
		return nil, err
	}
	return newBase(net, cfg, seed), err
}

// NewFromGrid builds a Simulator over a toroidal grid (spec §6.1's
// new_from_grid).
func NewFromGrid(cfg config.Config, rows, cols int, seed uint64, lengthM, speedKmh float64) (*Simulator, error) {
	net, err := network.BuildGrid(network.GridParams{Rows: rows, Cols: cols, Seed: seed, LengthM: lengthM, SpeedKmh: speedKmh})
	if err != nil {
		return nil, err
	}
	return newBase(net, cfg, seed), nil
}

// NewFromImported builds a Simulator over an externally sourced graph (spec
// §6.1's new_from_imported / §6.2's contract).
func NewFromImported(cfg config.Config, nodes []network.ImportedNode, edges []network.ImportedEdge, seed uint64) (*Simulator, error) {
	net, err := network.ImportGraph(nodes, edges)
	if err != nil {
		return nil, err
	}
	return newBase(net, cfg, seed), nil
}

// laneKey groups vehicles by (street, lane) for the per-tick bucketing step.
type laneKey struct {
	streetID int64
	lane     int
}

// Step advances the simulation by one tick (spec §4.5).
func (s *Simulator) Step(dt float64) {
	s.Clock.DT = dt
	s.Clock.Advance()

	for _, ctrl := range s.Signals {
		ctrl.Advance(dt)
	}

	buckets := make(map[laneKey][]*vehicle.Vehicle)
	for _, v := range s.vehicles {
		if v.Terminal {
			continue
		}
		k := laneKey{streetID: v.StreetID, lane: v.Lane}
		buckets[k] = append(buckets[k], v)
	}

	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].S != bucket[j].S {
				return bucket[i].S < bucket[j].S
			}
			return bucket[i].ID < bucket[j].ID // stable tie-break, spec §5
		})
		for i, v := range bucket {
			var leader *vehicle.Vehicle
			if i+1 < len(bucket) {
				leader = bucket[i+1] // leader = vehicle with larger s, spec §9's corrected rule
			}
			vehicle.Update(v, dt, leader, s.Network, s.Signals)
		}
	}

	live := lo.Filter(s.vehicles, func(v *vehicle.Vehicle, _ int) bool { return !v.Terminal })
	dropped := len(s.vehicles) - len(live)
	s.vehicles = live

	for i := 0; i < dropped; i++ {
		if s.rng.PTrue(s.respawnProbability) {
			s.SpawnVehicle()
		}
	}
}

// SpawnVehicle injects one vehicle at a random boundary-to-boundary route
// (spec §4.5's spawn_vehicle). If the network has fewer than 2 boundary
// nodes (e.g. a toroidal grid, where every node has outgoing degree 2 and
// so none qualify), it falls back to picking source/sink from every node
// instead — a grid otherwise could never spawn a vehicle at all. It
// silently does nothing if no route exists between the chosen pair (spec
// §7's RoutingUnreachable is not an error).
func (s *Simulator) SpawnVehicle() bool {
	pool := s.Network.BoundaryNodes()
	if len(pool) < 2 {
		pool = s.Network.AllNodeIDs()
	}
	if len(pool) < 2 {
		log.Warnf("spawn skipped: network has %d node(s), need at least 2", len(pool))
		return false
	}
	srcIdx := s.rng.IntRange(0, len(pool)-1)
	source := pool[srcIdx]
	sink := source
	for sink == source {
		sink = pool[s.rng.IntRange(0, len(pool)-1)]
	}

	route := s.Router.ShortestPath(source, sink)
	if len(route) == 0 {
		log.Debugf("spawn skipped: no route from %d to %d", source, sink)
		return false
	}

	first := s.Network.Street(route[0])
	lane := s.rng.IntRange(0, first.LaneCount()-1)
	profileName := s.profileNames[s.rng.IntRange(0, len(s.profileNames)-1)]
	profile := s.profiles[profileName]

	s.nextVehicleID++
	v := vehicle.New(s.nextVehicleID, profile, lane, route, s.Network)
	s.vehicles = append(s.vehicles, v)
	return true
}

// Run seeds k spawns then advances n ticks of dt seconds each (spec §4.5's
// run(n_steps, dt)). k is the configuration's seed_spawns value.
func (s *Simulator) Run(steps int, dt float64) {
	for i := 0; i < s.seedSpawns; i++ {
		s.SpawnVehicle()
	}
	for i := 0; i < steps; i++ {
		s.Step(dt)
	}
}

// Vehicles returns the live vehicle collection for read-only iteration
// (spec §6.1).
func (s *Simulator) Vehicles() []*vehicle.Vehicle {
	return s.vehicles
}
