package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/scoring"
)

type seriesDoc struct {
	Fleet                 string            `yaml:"fleet"`
	ValidRequiredSkippers int               `yaml:"valid_required_skippers"`
	QualifyCount          *int              `yaml:"qualify_count"`
	OffsetTime            int               `yaml:"offset_time"`
	RaceFile              string            `yaml:"race_file"`
	Boats                 map[string]string `yaml:"boats"`
}

type raceDayDoc struct {
	Date  string    `yaml:"date"`
	RC    []string  `yaml:"rc"`
	Races []raceDoc `yaml:"races"`
}

type raceDoc struct {
	WindBF        *int              `yaml:"wind_bf"`
	Notes         string            `yaml:"notes"`
	OffsetTime    *int              `yaml:"offset_time"`
	BoatOverrides map[string]string `yaml:"boat_overrides"`
	Times         map[string]any    `yaml:"times"`
}

const raceDateLayout = "2006_01_02"

func (r *Repository) loadSeries(path string) (map[string]*scoring.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading series file: %w", err)
	}
	docs := make(map[string]seriesDoc)
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing series file %s: %w", path, err)
	}

	out := make(map[string]*scoring.Series, len(docs))
	for name, doc := range docs {
		series, err := r.buildSeries(name, doc, filepath.Dir(path))
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", name, err)
		}
		out[name] = series
	}
	return out, nil
}

func (r *Repository) buildSeries(name string, doc seriesDoc, inputDir string) (*scoring.Series, error) {
	fleet, ok := r.Fleets[doc.Fleet]
	if !ok {
		return nil, fmt.Errorf("fleet %q does not exist", doc.Fleet)
	}

	opts := []scoring.SeriesOption{}
	if doc.QualifyCount != nil {
		opts = append(opts, scoring.WithQualifyCount(*doc.QualifyCount))
	}
	series := scoring.NewSeries(name, doc.ValidRequiredSkippers, fleet, opts...)

	for skipperID, boatCode := range doc.Boats {
		boat, err := fleet.Boat(boatCode)
		if err != nil {
			return nil, err
		}
		if err := series.AddSkipperBoat(r.skipperFor(skipperID), boat); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(filepath.Join(inputDir, doc.RaceFile))
	if err != nil {
		return nil, fmt.Errorf("reading race file: %w", err)
	}
	var days []raceDayDoc
	if err := yaml.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("parsing race file %s: %w", doc.RaceFile, err)
	}

	for _, day := range days {
		date, err := time.Parse(raceDateLayout, day.Date)
		if err != nil {
			return nil, fmt.Errorf("race date %q: %w", day.Date, err)
		}
		for _, rd := range day.Races {
			race, err := r.buildRace(series, day, rd, date, doc.OffsetTime)
			if err != nil {
				return nil, fmt.Errorf("race on %s: %w", day.Date, err)
			}
			if err := series.AddRace(race); err != nil {
				return nil, err
			}
		}
	}
	return series, nil
}

//nolint:gocognit // one decision per input field
func (r *Repository) buildRace(
	series *scoring.Series,
	day raceDayDoc,
	doc raceDoc,
	date time.Time,
	seriesOffset int,
) (*scoring.Race, error) {
	boatDict := series.BoatDict()
	for skipperID, boatCode := range doc.BoatOverrides {
		boat, err := series.Fleet().Boat(boatCode)
		if err != nil {
			return nil, err
		}
		boatDict[r.skipperFor(skipperID)] = boat
	}

	opts := []scoring.RaceOption{scoring.WithNotes(doc.Notes)}
	if doc.WindBF != nil {
		opts = append(opts, scoring.WithWindBF(*doc.WindBF))
	} else if len(doc.Times) > 0 {
		return nil, fmt.Errorf("race has recorded times but no wind_bf observation")
	}
	race := scoring.NewRace(series.Fleet(), boatDict, series.ValidRequiredSkippers(), date, opts...)

	for _, rcID := range day.RC {
		skipper := r.skipperFor(rcID)
		boat, ok := race.Boat(skipper)
		if !ok {
			return nil, fmt.Errorf("no boat assigned to RC skipper %s", rcID)
		}
		if err := race.AddFinish(model.NewFinishRC(skipper, boat)); err != nil {
			return nil, err
		}
	}

	offset := seriesOffset
	if doc.OffsetTime != nil {
		offset = *doc.OffsetTime
	}

	for skipperID, value := range doc.Times {
		skipper := r.skipperFor(skipperID)
		boat, ok := race.Boat(skipper)
		if !ok {
			return nil, fmt.Errorf("no boat assigned to skipper %s", skipperID)
		}
		finish, err := parseFinish(skipper, boat, value, doc.WindBF, offset)
		if err != nil {
			return nil, err
		}
		if err := race.AddFinish(finish); err != nil {
			return nil, err
		}
	}
	return race, nil
}

// parseFinish interprets one entry of a race's times map: an integer elapsed
// time in seconds, or one of the symbolic outcomes dnf, dsq, fip<N>.
func parseFinish(
	skipper model.Skipper,
	boat *model.BoatType,
	value any,
	windBF *int,
	offsetTimeS int,
) (model.Finish, error) {
	switch v := value.(type) {
	case int:
		return model.NewFinishTime(skipper, boat, *windBF, v, offsetTimeS), nil
	case string:
		lowered := strings.ToLower(v)
		switch {
		case lowered == "dnf":
			return model.NewFinishDNF(skipper, boat), nil
		case lowered == "dsq":
			return model.NewFinishDQ(skipper, boat), nil
		case strings.HasPrefix(lowered, "fip"):
			place, err := strconv.Atoi(lowered[3:])
			if err != nil {
				return nil, fmt.Errorf("finish-in-place %q for %s: %w", v, skipper, err)
			}
			return model.NewFinishFIP(skipper, boat, place), nil
		default:
			return nil, fmt.Errorf("unknown race finish %q for %s", v, skipper)
		}
	default:
		return nil, fmt.Errorf("unknown finish value %v (%T) for %s", value, value, skipper)
	}
}
