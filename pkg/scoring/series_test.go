package scoring_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/scoring"
	"github.com/sailclub/sailscore/testsupport/basedata"
)

func decimalStrings(values []decimal.Decimal) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

// fipEntry describes one skipper's outcome for a scripted race: a positive
// place, or one of the markers below.
type fipEntry struct {
	id    string
	place int
}

const (
	markRC  = 0
	markDNF = -1
)

// scriptedRace builds a valid race from declared places, keeping the test
// scenarios independent of time correction.
func scriptedRace(t *testing.T, s *scoring.Series, entries []fipEntry) *scoring.Race {
	t.Helper()
	fleet := s.Fleet()
	boat, err := fleet.Boat("mc")
	require.NoError(t, err)

	race := scoring.NewRace(fleet, s.BoatDict(), s.ValidRequiredSkippers(),
		basedata.TestDate(), scoring.WithWindBF(2))
	for _, e := range entries {
		skipper := model.NewSkipper(e.id)
		var finish model.Finish
		switch e.place {
		case markRC:
			finish = model.NewFinishRC(skipper, boat)
		case markDNF:
			finish = model.NewFinishDNF(skipper, boat)
		default:
			finish = model.NewFinishFIP(skipper, boat, e.place)
		}
		require.NoError(t, race.AddFinish(finish))
	}
	require.NoError(t, s.AddRace(race))
	return race
}

// fourRaceSeries is the reference scenario used by several tests:
//
//	race    alice  bob  carol
//	  1        1     2      3
//	  2        2     1      3
//	  3       RC     1      2
//	  4        3     1      2
func fourRaceSeries(t *testing.T) *scoring.Series {
	t.Helper()
	s := basedata.SampleSeries(basedata.SampleFleet(), "alice", "bob", "carol")
	scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}, {"carol", 3}})
	scriptedRace(t, s, []fipEntry{{"alice", 2}, {"bob", 1}, {"carol", 3}})
	scriptedRace(t, s, []fipEntry{{"alice", markRC}, {"bob", 1}, {"carol", 2}})
	scriptedRace(t, s, []fipEntry{{"alice", 3}, {"bob", 1}, {"carol", 2}})
	return s
}

func TestQualifyCountDefault(t *testing.T) {
	s := fourRaceSeries(t)
	// half of four valid races, rounded up
	assert.Equal(t, 2, s.QualifyCount())

	scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}})
	assert.Equal(t, 3, s.QualifyCount())
}

func TestQualifyCountOverride(t *testing.T) {
	s := scoring.NewSeries("2025_test", 2, basedata.SampleFleet(), scoring.WithQualifyCount(5))
	assert.Equal(t, 5, s.QualifyCount())
}

func TestParticipationCounts(t *testing.T) {
	s := fourRaceSeries(t)
	alice := model.NewSkipper("alice")
	assert.Equal(t, 3, s.NumFinished(alice))
	assert.Equal(t, 1, s.NumRC(alice))
	assert.Equal(t, 0, s.NumDNF(alice))
}

func TestQualification(t *testing.T) {
	s := fourRaceSeries(t)
	scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}, {"dave", 3}})
	scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}, {"carol", 3}})

	// six valid races, qualify count 3
	require.Equal(t, 3, s.QualifyCount())
	assert.True(t, s.Qualifies(model.NewSkipper("alice")))
	assert.True(t, s.Qualifies(model.NewSkipper("bob")))
	// dave only sailed one race
	assert.False(t, s.Qualifies(model.NewSkipper("dave")))

	_, ok := s.PointsList(model.NewSkipper("dave"))
	assert.False(t, ok)
	_, ok = s.TotalPoints(model.NewSkipper("dave"))
	assert.False(t, ok)
}

func TestDNFCountsTowardQualification(t *testing.T) {
	s := basedata.SampleSeries(basedata.SampleFleet(), "alice", "bob", "carol")
	scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}, {"carol", markDNF}})
	scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}, {"carol", markDNF}})

	require.Equal(t, 1, s.QualifyCount())
	assert.True(t, s.Qualifies(model.NewSkipper("carol")))
}

func TestRCPointsDropSingleWorst(t *testing.T) {
	s := fourRaceSeries(t)
	// alice scored 1, 2 and 3; the 3 is dropped, leaving an average of 1.5
	rcPts, ok := s.RCPoints(model.NewSkipper("alice"))
	require.True(t, ok)
	assert.Equal(t, "1.5", rcPts.String())

	// bob scored 2, 1, 1, 1; drop the 2
	rcPts, ok = s.RCPoints(model.NewSkipper("bob"))
	require.True(t, ok)
	assert.Equal(t, "1", rcPts.String())
}

func TestRCPointsAverageAfterDrop(t *testing.T) {
	s := basedata.SampleSeries(basedata.SampleFleet(), "alice", "bob")
	scriptedRace(t, s, []fipEntry{{"alice", 2}, {"bob", 1}})
	scriptedRace(t, s, []fipEntry{{"alice", 4}, {"bob", 1}})
	scriptedRace(t, s, []fipEntry{{"alice", 6}, {"bob", 1}})

	// 2, 4 and 6: the 6 is dropped, credit is the mean of the rest
	rcPts, ok := s.RCPoints(model.NewSkipper("alice"))
	require.True(t, ok)
	assert.Equal(t, "3", rcPts.String())
}

func TestRCPointsAbsentWithoutScoredRaces(t *testing.T) {
	s := basedata.SampleSeries(basedata.SampleFleet(), "alice", "bob", "rconly")
	scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}, {"rconly", markRC}})

	_, ok := s.RCPoints(model.NewSkipper("rconly"))
	assert.False(t, ok)
}

func TestRCPointsSingleScoreKept(t *testing.T) {
	s := basedata.SampleSeries(basedata.SampleFleet(), "alice", "bob")
	scriptedRace(t, s, []fipEntry{{"alice", 2}, {"bob", 1}})

	rcPts, ok := s.RCPoints(model.NewSkipper("alice"))
	require.True(t, ok)
	assert.Equal(t, "2", rcPts.String())
}

func TestPointsListWithRCSubstitution(t *testing.T) {
	s := fourRaceSeries(t)

	pl, ok := s.PointsList(model.NewSkipper("alice"))
	require.True(t, ok)
	// scores 1, 2, 3 plus the RC credit of 1.5, lowest two scored
	assert.Equal(t, []string{"1", "1.5"}, decimalStrings(pl.Scored))
	assert.Equal(t, []string{"2", "3"}, decimalStrings(pl.Excluded))

	total, ok := s.TotalPoints(model.NewSkipper("alice"))
	require.True(t, ok)
	assert.Equal(t, "2.5", total.String())

	total, ok = s.TotalPoints(model.NewSkipper("bob"))
	require.True(t, ok)
	assert.Equal(t, "2", total.String())

	total, ok = s.TotalPoints(model.NewSkipper("carol"))
	require.True(t, ok)
	assert.Equal(t, "4", total.String())
}

func TestRCSubstitutionCapped(t *testing.T) {
	s := basedata.SampleSeries(basedata.SampleFleet(), "alice", "bob", "carol")
	scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}, {"carol", 3}})
	scriptedRace(t, s, []fipEntry{{"alice", markRC}, {"bob", 1}, {"carol", 2}})
	scriptedRace(t, s, []fipEntry{{"alice", markRC}, {"bob", 1}, {"carol", 2}})
	scriptedRace(t, s, []fipEntry{{"alice", markRC}, {"bob", 1}, {"carol", 2}})

	pl, ok := s.PointsList(model.NewSkipper("alice"))
	require.True(t, ok)
	// one score of 1 plus at most two RC credits of 1
	assert.Len(t, pl.Scored, 2)
	assert.Len(t, append(pl.Scored, pl.Excluded...), 3)
}

func TestSeriesRejectsDuplicateRace(t *testing.T) {
	s := basedata.SampleSeries(basedata.SampleFleet(), "alice", "bob")
	race := scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}})
	assert.Error(t, s.AddRace(race))
}

func TestSeriesRejectsDuplicateSkipperBoat(t *testing.T) {
	fleet := basedata.SampleFleet()
	s := basedata.SampleSeries(fleet, "alice")
	boat, err := fleet.Boat("laser")
	require.NoError(t, err)
	assert.Error(t, s.AddSkipperBoat(model.NewSkipper("alice"), boat))
}

func TestAllSkippersFirstAppearanceOrder(t *testing.T) {
	s := basedata.SampleSeries(basedata.SampleFleet(), "alice", "bob", "carol")
	scriptedRace(t, s, []fipEntry{{"carol", 1}, {"alice", 2}})
	scriptedRace(t, s, []fipEntry{{"bob", 1}, {"carol", 2}})

	ids := make([]string, 0, 3)
	for _, sk := range s.AllSkippers() {
		ids = append(ids, sk.Identifier)
	}
	assert.Equal(t, []string{"carol", "alice", "bob"}, ids)
}

func TestInvalidationOnNewFinish(t *testing.T) {
	fleet := basedata.SampleFleet()
	s := basedata.SampleSeries(fleet, "alice", "bob")
	race := scriptedRace(t, s, []fipEntry{{"alice", 2}, {"bob", 3}})

	total, ok := s.TotalPoints(model.NewSkipper("alice"))
	require.True(t, ok)
	require.Equal(t, "2", total.String())

	boat, err := fleet.Boat("mc")
	require.NoError(t, err)
	require.NoError(t, race.AddFinish(model.NewFinishFIP(model.NewSkipper("carol"), boat, 1)))

	// the cached aggregate was dropped and recomputed
	total, ok = s.TotalPoints(model.NewSkipper("alice"))
	require.True(t, ok)
	assert.Equal(t, "2", total.String())
	assert.Len(t, s.AllSkippers(), 3)
}

func TestLatestRaceDate(t *testing.T) {
	s := basedata.SampleSeries(basedata.SampleFleet(), "alice", "bob")
	_, ok := s.LatestRaceDate()
	assert.False(t, ok)

	scriptedRace(t, s, []fipEntry{{"alice", 1}, {"bob", 2}})
	d, ok := s.LatestRaceDate()
	require.True(t, ok)
	assert.Equal(t, basedata.TestDate(), d)
}
