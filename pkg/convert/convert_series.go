package convert

import (
	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/scoring"
	"github.com/sailclub/sailscore/pkg/utils"
)

const raceDateLayout = "2006_01_02"

// RaceEntry is one race of the legacy series document. Skip holds the finish
// value per skipper, either an elapsed time string "mm:ss", the integer 0 for
// a finish on the starting gun, or a symbolic outcome label.
type RaceEntry struct {
	Date string            `yaml:"date"`
	RC   []string          `yaml:"rc"`
	Boat map[string]string `yaml:"boat"`
	Skip map[string]any    `yaml:"skip"`
}

// SeriesDoc maps the 1-based race number to its entry.
type SeriesDoc map[int]RaceEntry

// BuildSeriesDoc renders the series in the shape the legacy scorer reads.
// Race committee volunteers appear only in the rc roster, never in skip,
// since the legacy scorer substitutes their credit itself.
func BuildSeriesDoc(s *scoring.Series) SeriesDoc {
	doc := make(SeriesDoc, len(s.Races()))
	for i, race := range s.Races() {
		entry := RaceEntry{
			Date: race.Date().Format(raceDateLayout),
			RC:   []string{},
			Boat: make(map[string]string),
			Skip: make(map[string]any),
		}
		for _, skipper := range race.RCSkippers() {
			entry.RC = append(entry.RC, skipper.Identifier)
		}
		for _, finish := range race.Finishes() {
			if _, rc := finish.(*model.FinishRC); rc {
				continue
			}
			entry.Boat[finish.Skipper().Identifier] = finish.Boat().Code
			entry.Skip[finish.Skipper().Identifier] = legacyFinishValue(finish)
		}
		doc[i+1] = entry
	}
	return doc
}

func legacyFinishValue(finish model.Finish) any {
	t, ok := finish.(*model.FinishTime)
	if !ok {
		return finish.Label()
	}
	elapsed := t.ElapsedS()
	if elapsed == 0 {
		return 0
	}
	return utils.FormatTime(elapsed)
}
