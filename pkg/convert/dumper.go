package convert

import (
	"fmt"
	"os"
	"slices"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/scoring"
	"github.com/sailclub/sailscore/pkg/utils"
)

// DumpFile is the result dump the legacy scorer writes after a run.
type DumpFile struct {
	Skip map[string]SkipperDump `yaml:"skip"`
}

// SkipperDump holds the legacy scorer's per-skipper results. Scalar fields
// are kept as strings because the scorer emits either numbers or markers
// like "na" and "DNQ" in the same position.
type SkipperDump struct {
	FinishedRaces int            `yaml:"finished_races"`
	RCedRaces     int            `yaml:"rced_races"`
	RCPoints      string         `yaml:"rc_points"`
	LowNList      []string       `yaml:"low_n_list"`
	Race          map[int]string `yaml:"race"`
}

// ReadDumpFile parses a dumper.yaml written by the legacy scorer.
func ReadDumpFile(path string) (*DumpFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dump file: %w", err)
	}
	var dump DumpFile
	if err := yaml.Unmarshal(raw, &dump); err != nil {
		return nil, fmt.Errorf("parsing dump file %s: %w", path, err)
	}
	return &dump, nil
}

// CheckSeries diffs the engine's results for a series against a legacy dump.
// It returns one message per disagreeing skipper, first mismatch only, in the
// series' skipper order. An empty slice means full agreement.
func CheckSeries(s *scoring.Series, dump *DumpFile) []string {
	var errs []string
	for _, skipper := range s.AllSkippers() {
		sd, ok := dump.Skip[skipper.Identifier]
		if !ok {
			errs = append(errs, fmt.Sprintf("skipper %s missing from dump", skipper.Identifier))
			continue
		}
		if msg := checkSkipper(s, skipper, sd); msg != "" {
			errs = append(errs, fmt.Sprintf("skipper %s %s", skipper.Identifier, msg))
		}
	}
	return errs
}

func checkSkipper(s *scoring.Series, skipper model.Skipper, sd SkipperDump) string {
	if msg := checkCounts(s, skipper, sd); msg != "" {
		return msg
	}
	if msg := checkSeriesPoints(s, skipper, sd); msg != "" {
		return msg
	}
	if msg := checkRaceResults(s, skipper, sd); msg != "" {
		return msg
	}
	return checkRCPoints(s, skipper, sd)
}

func checkCounts(s *scoring.Series, skipper model.Skipper, sd SkipperDump) string {
	finished := 0
	rced := 0
	for _, race := range s.Races() {
		if _, ok := race.SkipperPoints()[skipper]; ok {
			finished++
		}
		if slices.Contains(race.RCSkippers(), skipper) {
			rced++
		}
	}
	if finished != sd.FinishedRaces {
		return fmt.Sprintf("finished race count: engine=%d legacy=%d", finished, sd.FinishedRaces)
	}
	if rced != sd.RCedRaces {
		return fmt.Sprintf("rc race count: engine=%d legacy=%d", rced, sd.RCedRaces)
	}
	return ""
}

func checkSeriesPoints(s *scoring.Series, skipper model.Skipper, sd SkipperDump) string {
	pl, qualified := s.PointsList(skipper)
	if !qualified {
		if len(sd.LowNList) != 1 || (sd.LowNList[0] != "na" && sd.LowNList[0] != "DNQ") {
			return fmt.Sprintf("expected na/DNQ for non-qualifier, legacy=%v", sd.LowNList)
		}
		return ""
	}

	legacy := make([]decimal.Decimal, 0, len(sd.LowNList))
	for _, raw := range sd.LowNList {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Sprintf("non-numeric legacy points entry %q", raw)
		}
		legacy = append(legacy, utils.RoundScore(d))
	}
	if len(pl.Scored) != len(legacy) {
		return fmt.Sprintf("scored point count: engine=%d legacy=%d", len(pl.Scored), len(legacy))
	}

	engine := slices.Clone(pl.Scored)
	slices.SortFunc(engine, decimal.Decimal.Cmp)
	slices.SortFunc(legacy, decimal.Decimal.Cmp)
	for i := range engine {
		if !engine[i].Equal(legacy[i]) {
			return fmt.Sprintf("scored point %d: engine=%s legacy=%s", i, engine[i], legacy[i])
		}
	}
	return ""
}

func checkRaceResults(s *scoring.Series, skipper model.Skipper, sd SkipperDump) string {
	for i, race := range s.Races() {
		num := i + 1
		var engine string
		if pts, ok := race.SkipperPoints()[skipper]; ok {
			engine = pts.String()
		} else if slices.Contains(race.RCSkippers(), skipper) {
			engine = "RC"
		}

		legacy := sd.Race[num]
		if engine == "" && legacy == "" {
			continue
		}
		if engine == "RC" || legacy == "RC" {
			if engine != legacy {
				return fmt.Sprintf("race %d: engine=%s legacy=%s", num, engine, legacy)
			}
			continue
		}

		ed, err := decimal.NewFromString(engine)
		if err != nil {
			return fmt.Sprintf("race %d: engine value %q missing or non-numeric", num, engine)
		}
		ld, err := decimal.NewFromString(legacy)
		if err != nil {
			return fmt.Sprintf("race %d: legacy value %q missing or non-numeric", num, legacy)
		}
		if !ed.Equal(utils.RoundScore(ld)) {
			return fmt.Sprintf("race %d: engine=%s legacy=%s", num, engine, legacy)
		}
	}
	return ""
}

func checkRCPoints(s *scoring.Series, skipper model.Skipper, sd SkipperDump) string {
	rcPts, ok := s.RCPoints(skipper)
	if !ok {
		if sd.RCPoints != "na" {
			return fmt.Sprintf("rc points: engine=na legacy=%s", sd.RCPoints)
		}
		return ""
	}
	legacy, err := decimal.NewFromString(sd.RCPoints)
	if err != nil {
		return fmt.Sprintf("rc points: legacy value %q non-numeric", sd.RCPoints)
	}
	if !rcPts.Equal(utils.RoundScore(legacy)) {
		return fmt.Sprintf("rc points: engine=%s legacy=%s", rcPts, legacy)
	}
	return ""
}
