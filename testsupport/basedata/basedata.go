// Package basedata provides shared sample objects for tests.
package basedata

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/scoring"
)

const FleetName = "testfleet"

func TestDate() time.Time {
	t, _ := time.Parse("2006_01_02", "2025_05_04")
	return t
}

// SampleWindMap has the standard club buckets: calm, light, medium, heavy.
func SampleWindMap() *model.WindMap {
	wm := model.NewWindMap(0)
	for _, r := range []struct{ start, end, index int }{
		{0, 1, 1},
		{2, 3, 2},
		{4, 4, 3},
		{5, 12, 4},
	} {
		if err := wm.AddRange(r.start, r.end, r.index); err != nil {
			log.Fatalf("sample wind map: %v", err)
		}
	}
	return wm
}

func dpn(value string) *model.HandicapNumber {
	d, err := decimal.NewFromString(value)
	if err != nil {
		log.Fatalf("sample dpn %s: %v", value, err)
	}
	h, err := model.NewHandicapNumber(d, model.PedigreeStandard)
	if err != nil {
		log.Fatalf("sample dpn %s: %v", value, err)
	}
	return &h
}

// SampleBoat builds a boat with a full handicap table derived from the
// primary value, so corrected times stay easy to reason about in tests.
func SampleBoat(code, primary string) *model.BoatType {
	return model.NewBoatType(
		"test "+code, FleetName, model.ClassCenterboard, code, code,
		[model.DpnSlots]*model.HandicapNumber{
			dpn(primary), dpn(primary), dpn(primary), dpn(primary), dpn(primary),
		},
		SampleWindMap())
}

// SparseBoat has only a primary handicap, forcing the wind bucket fallback.
func SparseBoat(code, primary string) *model.BoatType {
	return model.NewBoatType(
		"test "+code, FleetName, model.ClassCenterboard, code, code,
		[model.DpnSlots]*model.HandicapNumber{dpn(primary)},
		SampleWindMap())
}

// SampleFleet holds three designs with realistic Portsmouth numbers.
func SampleFleet() *model.Fleet {
	boats := map[string]*model.BoatType{
		"mc":    SampleBoat("mc", "96.1"),
		"laser": SampleBoat("laser", "110.3"),
		"jy15":  SampleBoat("jy15", "118.5"),
	}
	return model.NewFleet(FleetName, boats, SampleWindMap(), "test data")
}

// SampleSeries is an empty series over the sample fleet with the given
// skippers registered on MC scows.
func SampleSeries(fleet *model.Fleet, skipperIDs ...string) *scoring.Series {
	s := scoring.NewSeries("2025_test_series", 2, fleet)
	boat, err := fleet.Boat("mc")
	if err != nil {
		log.Fatalf("sample series: %v", err)
	}
	for _, id := range skipperIDs {
		if err := s.AddSkipperBoat(model.NewSkipper(id), boat); err != nil {
			log.Fatalf("sample series: %v", err)
		}
	}
	return s
}
