// Package repository loads the club's input files (fleet definitions with
// Portsmouth handicap tables, the skipper roster and the series/race
// records) into the in-memory scoring model. The engine itself never touches
// the filesystem; everything it sees comes through here.
package repository

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sailclub/sailscore/log"
	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/scoring"
)

// Repository gives access to everything loaded from the input folder.
type Repository struct {
	Fleets   map[string]*model.Fleet
	Skippers map[string]model.Skipper
	Series   map[string]*scoring.Series

	// SeriesByYear groups series by the leading year token of their name,
	// including the synthesized season totals.
	SeriesByYear map[string][]*scoring.Series

	log *log.Logger
}

type Option func(r *Repository)

func WithLogger(l *log.Logger) Option {
	return func(r *Repository) {
		r.log = l
	}
}

// Load reads the three input documents and assembles the scoring model,
// including a synthesized "<year>_season_total" series per year.
func Load(inputDir, fleetFile, skipperFile, seriesFile string, opts ...Option) (*Repository, error) {
	r := &Repository{log: log.Default().Named("repository")}
	for _, opt := range opts {
		opt(r)
	}

	var err error
	if r.Fleets, err = r.loadFleets(filepath.Join(inputDir, fleetFile)); err != nil {
		return nil, err
	}
	if r.Skippers, err = r.loadSkippers(filepath.Join(inputDir, skipperFile)); err != nil {
		return nil, err
	}
	if r.Series, err = r.loadSeries(filepath.Join(inputDir, seriesFile)); err != nil {
		return nil, err
	}
	if err = r.buildSeasonTotals(); err != nil {
		return nil, err
	}

	r.log.Info("input loaded",
		log.Int("fleets", len(r.Fleets)),
		log.Int("skippers", len(r.Skippers)),
		log.Int("series", len(r.Series)))
	return r, nil
}

// skipperFor resolves an identifier against the roster; identifiers not in
// the roster are accepted as ad-hoc skippers.
func (r *Repository) skipperFor(identifier string) model.Skipper {
	if s, ok := r.Skippers[identifier]; ok {
		return s
	}
	return model.NewSkipper(identifier)
}

// buildSeasonTotals merges every series of a year into one
// "<year>_season_total" series. All series of a year must agree on fleet and
// required-skipper count.
func (r *Repository) buildSeasonTotals() error {
	r.SeriesByYear = make(map[string][]*scoring.Series)
	for _, s := range r.Series {
		year := strings.TrimSpace(strings.Split(s.Name(), "_")[0])
		r.SeriesByYear[year] = append(r.SeriesByYear[year], s)
	}

	for year, group := range r.SeriesByYear {
		sort.Slice(group, func(i, j int) bool { return group[i].Name() < group[j].Name() })

		first := group[0]
		for _, s := range group[1:] {
			if s.ValidRequiredSkippers() != first.ValidRequiredSkippers() || s.Fleet() != first.Fleet() {
				return fmt.Errorf("cannot create season total for %s: series settings differ", year)
			}
		}

		total := scoring.NewSeries(
			year+"_season_total", first.ValidRequiredSkippers(), first.Fleet())
		for _, s := range group {
			for _, race := range s.Races() {
				if err := total.AddRace(race); err != nil {
					return err
				}
			}
		}

		if _, exists := r.Series[total.Name()]; exists {
			return fmt.Errorf("duplicate series %s", total.Name())
		}
		r.Series[total.Name()] = total
		r.SeriesByYear[year] = append(group, total)
	}
	return nil
}

// SeriesSorted returns all series ordered by name.
func (r *Repository) SeriesSorted() []*scoring.Series {
	out := make([]*scoring.Series, 0, len(r.Series))
	for _, s := range r.Series {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// LatestRaceDate is the most recent race date across all series.
func (r *Repository) LatestRaceDate() (time.Time, bool) {
	var latest time.Time
	found := false
	for _, s := range r.Series {
		if d, ok := s.LatestRaceDate(); ok && (!found || latest.Before(d)) {
			latest = d
			found = true
		}
	}
	return latest, found
}
