package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectedTime(t *testing.T) {
	boat := fullTableBoat(t)
	skipper := NewSkipper("alice")

	// 3600 s at handicap 96.3 (bf 2 bucket): 360000 / 96.3 = 3738.3, rounds down
	finish := NewFinishTime(skipper, boat, 2, 3600, 0)
	assert.Equal(t, 3600, finish.ElapsedS())
	assert.Equal(t, int64(3738), finish.CorrectedTimeS())

	// offsets are subtracted before correction
	withOffset := NewFinishTime(skipper, boat, 2, 3720, 120)
	assert.Equal(t, 3600, withOffset.ElapsedS())
	assert.Equal(t, int64(3738), withOffset.CorrectedTimeS())
}

func TestCorrectedTimeRoundsHalfUp(t *testing.T) {
	boat := NewBoatType("Scratch", "club", ClassCenterboard, "sc", "SC",
		[DpnSlots]*HandicapNumber{mustDpn(t, "200")},
		buildWindMap(t))
	// 0.5 s corrected fraction: 1 * 100 / 200 = 0.5, rounds to 1
	finish := NewFinishTime(NewSkipper("alice"), boat, 13, 1, 0)
	assert.Equal(t, int64(1), finish.CorrectedTimeS())
}

func TestFinishVariants(t *testing.T) {
	boat := fullTableBoat(t)
	skipper := NewSkipper("bob")

	timed := NewFinishTime(skipper, boat, 2, 3600, 0)
	assert.True(t, timed.Finished())
	assert.Equal(t, "Time", timed.Label())

	dnf := NewFinishDNF(skipper, boat)
	assert.False(t, dnf.Finished())
	assert.Equal(t, "DNF", dnf.Label())

	dq := NewFinishDQ(skipper, boat)
	assert.False(t, dq.Finished())
	assert.Equal(t, "DQ", dq.Label())

	fip := NewFinishFIP(skipper, boat, 4)
	assert.True(t, fip.Finished())
	assert.Equal(t, "FIP_4", fip.Label())

	rc := NewFinishRC(skipper, boat)
	assert.True(t, rc.Finished())
	assert.Equal(t, "RC", rc.Label())

	for _, f := range []Finish{timed, dnf, dq, fip, rc} {
		assert.Equal(t, skipper, f.Skipper())
		assert.Same(t, boat, f.Boat())
	}
}
