package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakub-suliga/Smart-City-Traffic/signal"
)

func defaultDurations() signal.Durations {
	return signal.Durations{Green: 15, Yellow: 3, Red: 15, RedYellow: 2}
}

func TestCyclePeriodIsThirtyFiveSeconds(t *testing.T) {
	d := defaultDurations()
	assert.Equal(t, 35.0, d.Period())
}

func TestAdvanceReturnsToGreenAfterFullPeriods(t *testing.T) {
	d := defaultDurations()
	c := signal.NewController(d, nil)
	for n := 1; n <= 3; n++ {
		c.Advance(d.Period())
		assert.Equal(t, signal.Green, c.Phase())
		assert.InDelta(t, 0.0, c.TimeInPhase(), 1e-9)
	}
}

func TestAdvanceCrossesMultiplePhaseBoundaries(t *testing.T) {
	d := defaultDurations()
	c := signal.NewController(d, nil)
	c.Advance(15 + 3 + 1) // 15 green + 3 yellow + 1 into red
	assert.Equal(t, signal.Red, c.Phase())
	assert.InDelta(t, 1.0, c.TimeInPhase(), 1e-9)
}

func TestMayEnterUngovernedLaneAlwaysTrue(t *testing.T) {
	c := signal.NewController(defaultDurations(), nil)
	c.SetPhase(signal.Red, 0)
	assert.True(t, c.MayEnter(1, 0))
}

func TestMayEnterGovernedLaneMatchesPhase(t *testing.T) {
	key := signal.LaneKey{StreetID: 1, Lane: 0}
	c := signal.NewController(defaultDurations(), []signal.LaneKey{key})

	cases := []struct {
		phase signal.Phase
		want  bool
	}{
		{signal.Green, true},
		{signal.Yellow, true},
		{signal.Red, false},
		{signal.RedYellow, false},
	}
	for _, tc := range cases {
		c.SetPhase(tc.phase, 0)
		assert.Equal(t, tc.want, c.MayEnter(1, 0), "phase %s", tc.phase)
	}

	// a different (street, lane) pair on the same controller is ungoverned
	assert.True(t, c.MayEnter(2, 0))
}
