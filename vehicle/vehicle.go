// Package vehicle implements a single agent's state and its per-tick update
// rule: longitudinal kinematics, lane selection, turn preparation, and
// intersection arrival (spec §3, §4.4). Grounded in the teacher's
// entity/person/route/vehicle.go state machine and the original vehicle.py,
// both of which drive the same leader-gap / turn-classification / signal /
// kinematics pipeline.
package vehicle

import (
	"math"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/jakub-suliga/Smart-City-Traffic/errs"
	"github.com/jakub-suliga/Smart-City-Traffic/geometry"
	"github.com/jakub-suliga/Smart-City-Traffic/network"
	"github.com/jakub-suliga/Smart-City-Traffic/signal"
	"github.com/jakub-suliga/Smart-City-Traffic/utils/config"
)

var log = logrus.WithField("module", "vehicle")

const (
	maxAccel         = 2.0  // m/s^2, desired acceleration absent any hazard
	maxDecel         = 4.0  // m/s^2, braking for a leader or a red signal
	minGapM          = 5.0  // m, minimum bumper-to-bumper gap before reacting
	turnPrepDistM    = 50.0 // m, distance to end-of-street at which turn prep begins
	signalCheckDist  = 20.0 // m, distance to end-of-street at which signals are consulted
	turnThresholdDeg = 30.0 // degrees, classifyTurn's left/right boundary
)

// Vehicle is one simulated agent (spec §3's "Vehicle" data model).
type Vehicle struct {
	ID             int64
	Profile        config.VehicleProfile
	StreetID       int64
	Lane           int
	S              float64
	Speed          float64
	Route          []int64
	RouteIndex     int
	Terminal       bool
	BaseSpeedLimit float64
}

// New places a vehicle at s=0, speed=0 on the first street of route, in the
// given lane, capturing base_speed_limit from that street and profile (spec
// §4.6).
func New(id int64, profile config.VehicleProfile, lane int, route []int64, net *network.Network) *Vehicle {
	first := net.Street(route[0])
	return &Vehicle{
		ID:             id,
		Profile:        profile,
		StreetID:       route[0],
		Lane:           lane,
		Route:          route,
		RouteIndex:     0,
		BaseSpeedLimit: first.SpeedLimit * profile.SpeedFactor,
	}
}

// EffectiveSpeedCap returns the speed ceiling for the vehicle's current
// street: the lesser of the street's posted limit scaled by the profile's
// speed factor, and the base limit captured when the vehicle was placed on
// its very first street (spec §4.6 — this cap persists across street
// changes, independent of each new street's own limit).
func (v *Vehicle) EffectiveSpeedCap(street *network.Street) float64 {
	return math.Min(street.SpeedLimit*v.Profile.SpeedFactor, v.BaseSpeedLimit)
}

// classifyTurn compares the heading of the current street's final segment
// against the next street's first segment, returning the turn direction a
// vehicle must take (spec §4.4 step 3). The 30-degree boundary is strict:
// diff > 30 is right, diff < -30 is left, otherwise through.
func classifyTurn(current, next *network.Street) network.Direction {
	diff := geometry.AngleDiffDegrees(current.HeadingAtEnd(), next.HeadingAtStart())
	switch {
	case diff > turnThresholdDeg:
		return network.Right
	case diff < -turnThresholdDeg:
		return network.Left
	default:
		return network.Through
	}
}

// Update advances v by one tick (spec §4.4). leader is the next vehicle
// ahead on the same (street, lane), or nil. signals maps an intersection id
// to its governing controller; an id absent from the map is an
// ungoverned (free) intersection.
func Update(v *Vehicle, dt float64, leader *Vehicle, net *network.Network, signals map[int64]*signal.Controller) {
	if v.Terminal {
		return
	}
	street := net.Street(v.StreetID)
	if street == nil {
		log.Panicf("%v", errs.NewStateViolation("vehicle %d references unknown street %d", v.ID, v.StreetID))
	}

	accel := maxAccel
	if leader != nil {
		gap := leader.S - v.S - minGapM
		if gap < v.Speed*v.Profile.ReactionTime {
			accel = -maxDecel
		}
	}

	remaining := street.Length() - v.S
	hasNext := v.RouteIndex < len(v.Route)-1

	if hasNext && remaining < turnPrepDistM {
		next := net.Street(v.Route[v.RouteIndex+1])
		dir := classifyTurn(street, next)
		if v.Lane < 0 || v.Lane >= street.LaneCount() {
			log.Panicf("%v", errs.NewStateViolation("vehicle %d lane %d out of range for street %d", v.ID, v.Lane, street.ID))
		}
		if !street.Lanes[v.Lane].Allows(dir) {
			switch dir {
			case network.Left:
				if v.Lane < street.LaneCount()-1 {
					v.Lane++
				}
			case network.Right:
				if v.Lane > 0 {
					v.Lane--
				}
			}
		}
	}

	if remaining < signalCheckDist {
		if ctrl, governed := signals[street.To]; governed && !ctrl.MayEnter(street.ID, v.Lane) {
			accel = -maxDecel
		}
	}

	vEff := v.EffectiveSpeedCap(street)
	v.Speed = lo.Clamp(v.Speed+accel*dt, 0, vEff)
	v.S += v.Speed * dt

	if v.S >= street.Length() {
		v.S = street.Length()
		v.Speed = 0
		if ctrl, governed := signals[street.To]; governed && !ctrl.MayEnter(street.ID, v.Lane) {
			return // hold at the stop line until the phase admits it
		}
		v.RouteIndex++
		if v.RouteIndex >= len(v.Route) {
			v.Terminal = true
			return
		}
		nextID := v.Route[v.RouteIndex]
		next := net.Street(nextID)
		if next == nil {
			log.Panicf("%v", errs.NewStateViolation("vehicle %d route references unknown street %d", v.ID, nextID))
		}
		v.StreetID = nextID
		if v.Lane >= next.LaneCount() {
			v.Lane = next.LaneCount() - 1
		}
		v.S = 0
		v.Speed = 0
	}
}
