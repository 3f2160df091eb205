package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/scoring"
	"github.com/sailclub/sailscore/testsupport/basedata"
)

func exportSeries(t *testing.T) *scoring.Series {
	t.Helper()
	fleet := basedata.SampleFleet()
	s := basedata.SampleSeries(fleet, "alice", "bob", "carol")
	mc, err := fleet.Boat("mc")
	require.NoError(t, err)
	laser, err := fleet.Boat("laser")
	require.NoError(t, err)

	bd := s.BoatDict()
	bd[model.NewSkipper("bob")] = laser
	race := scoring.NewRace(fleet, bd, 2, basedata.TestDate(), scoring.WithWindBF(2))
	require.NoError(t, race.AddFinish(model.NewFinishRC(model.NewSkipper("carol"), mc)))
	require.NoError(t, race.AddFinish(model.NewFinishTime(model.NewSkipper("alice"), mc, 2, 3600, 0)))
	require.NoError(t, race.AddFinish(model.NewFinishTime(model.NewSkipper("bob"), laser, 2, 4132, 0)))
	require.NoError(t, race.AddFinish(model.NewFinishDNF(model.NewSkipper("dave"), mc)))
	require.NoError(t, s.AddRace(race))
	return s
}

func TestBuildBoatsDoc(t *testing.T) {
	s := exportSeries(t)
	doc := BuildBoatsDoc(s)

	// only boats actually sailed in the series appear
	require.Len(t, doc, 2)
	mc, ok := doc["mc"]
	require.True(t, ok)
	_, ok = doc["laser"]
	require.True(t, ok)

	// one entry per wind range of the fleet's map
	assert.Len(t, mc, 4)
	assert.Equal(t, plainNumber("96.1"), mc["0-1"])
	assert.Equal(t, plainNumber("96.1"), mc["2-3"])
	assert.Equal(t, plainNumber("96.1"), mc["4"])
	assert.Equal(t, plainNumber("96.1"), mc["5-12"])
}

func TestBoatsDocMarshalsPlainNumbers(t *testing.T) {
	raw, err := yaml.Marshal(BuildBoatsDoc(exportSeries(t)))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "96.1")
	assert.NotContains(t, string(raw), `"96.1"`)
	assert.NotContains(t, string(raw), "'96.1'")
}

func TestBuildSeriesDoc(t *testing.T) {
	doc := BuildSeriesDoc(exportSeries(t))
	require.Len(t, doc, 1)
	entry, ok := doc[1]
	require.True(t, ok)

	// RC skippers appear in the rc roster only, never in boat or skip
	want := RaceEntry{
		Date: "2025_05_04",
		RC:   []string{"carol"},
		Boat: map[string]string{"alice": "mc", "bob": "laser", "dave": "mc"},
		Skip: map[string]any{"alice": "60:00", "bob": "68:52", "dave": "DNF"},
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Errorf("series entry not correct: %s", diff)
	}
}

func TestWriteLegacyDocs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	require.NoError(t, WriteLegacyDocs(exportSeries(t), dir))

	for _, name := range []string{"boats.yaml", "series.yaml"} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.NotEmpty(t, raw)
	}
}

func TestCheckSeriesAgreement(t *testing.T) {
	s := exportSeries(t)
	dump := &DumpFile{Skip: map[string]SkipperDump{
		"alice": {
			FinishedRaces: 1,
			RCedRaces:     0,
			RCPoints:      "1",
			LowNList:      []string{"1.0"},
			Race:          map[int]string{1: "1.0"},
		},
		"bob": {
			FinishedRaces: 1,
			RCedRaces:     0,
			RCPoints:      "1.5",
			LowNList:      []string{"1.5"},
			Race:          map[int]string{1: "1.5"},
		},
		"carol": {
			FinishedRaces: 0,
			RCedRaces:     1,
			RCPoints:      "na",
			LowNList:      []string{"DNQ"},
			Race:          map[int]string{1: "RC"},
		},
		"dave": {
			FinishedRaces: 1,
			RCedRaces:     0,
			RCPoints:      "3",
			LowNList:      []string{"2.0"},
			Race:          map[int]string{1: "3.0"},
		},
	}}

	// alice 3600s on mc corrects to 3746, bob 4132s on laser ties it:
	// both score 1.5; dave's DNF scores the starter count of 3
	mismatches := CheckSeries(s, dump)
	require.Len(t, mismatches, 2)
	assert.Contains(t, mismatches[0], "alice")
	assert.Contains(t, mismatches[1], "dave")
}

func TestCheckSeriesPass(t *testing.T) {
	s := exportSeries(t)
	dump := &DumpFile{Skip: map[string]SkipperDump{
		"alice": {
			FinishedRaces: 1,
			RCPoints:      "1.5",
			LowNList:      []string{"1.5"},
			Race:          map[int]string{1: "1.5"},
		},
		"bob": {
			FinishedRaces: 1,
			RCPoints:      "1.5",
			LowNList:      []string{"1.5"},
			Race:          map[int]string{1: "1.5"},
		},
		"carol": {
			RCedRaces: 1,
			RCPoints:  "na",
			LowNList:  []string{"na"},
			Race:      map[int]string{1: "RC"},
		},
		"dave": {
			FinishedRaces: 1,
			RCPoints:      "3",
			LowNList:      []string{"3"},
			Race:          map[int]string{1: "3"},
		},
	}}
	assert.Empty(t, CheckSeries(s, dump))
}

func TestCheckSeriesMissingSkipper(t *testing.T) {
	s := exportSeries(t)
	mismatches := CheckSeries(s, &DumpFile{Skip: map[string]SkipperDump{}})
	assert.Len(t, mismatches, 4)
}

func TestReadDumpFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dumper.yaml")
	content := `skip:
  alice:
    finished_races: 3
    rced_races: 1
    rc_points: 1.5
    low_n_list: [1, 1.5]
    race:
      1: 1
      2: 1.5
      3: RC
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	dump, err := ReadDumpFile(path)
	require.NoError(t, err)
	alice := dump.Skip["alice"]
	assert.Equal(t, 3, alice.FinishedRaces)
	assert.Equal(t, 1, alice.RCedRaces)
	assert.Equal(t, "1.5", alice.RCPoints)
	assert.Equal(t, []string{"1", "1.5"}, alice.LowNList)
	assert.Equal(t, "RC", alice.Race[3])
}

func TestReadDumpFileMissing(t *testing.T) {
	_, err := ReadDumpFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
