package scoring

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/utils"
)

// rcSubstitutionCap bounds how many RC races may be scored with the RC
// credit in one series.
const rcSubstitutionCap = 2

// PointsList is the outcome of a qualifying skipper's series scoring: the
// lowest qualify-count values count toward the total, the remainder are kept
// for display.
type PointsList struct {
	Scored   []decimal.Decimal
	Excluded []decimal.Decimal
}

// Series is an ordered sequence of races plus the qualification parameters.
// All aggregates (qualification, RC credit, point lists, standings, ranks)
// are memoized and invalidated whenever a race or finish is added.
type Series struct {
	name                  string
	validRequiredSkippers int
	fleet                 *model.Fleet
	qualifyCountOverride  *int

	races    []*Race
	boatDict map[model.Skipper]*model.BoatType

	skippers    *utils.Cell[[]model.Skipper]
	rcPoints    *utils.Cell[map[model.Skipper]decimal.Decimal]
	pointsLists *utils.Cell[map[model.Skipper]PointsList]
	standings   *utils.Cell[[]model.Skipper]
	ranks       *utils.Cell[map[model.Skipper]int]
}

type SeriesOption func(s *Series)

// WithQualifyCount fixes the qualification count instead of deriving it from
// the number of valid races.
func WithQualifyCount(count int) SeriesOption {
	return func(s *Series) {
		s.qualifyCountOverride = &count
	}
}

func NewSeries(name string, validRequiredSkippers int, fleet *model.Fleet, opts ...SeriesOption) *Series {
	s := &Series{
		name:                  name,
		validRequiredSkippers: validRequiredSkippers,
		fleet:                 fleet,
		boatDict:              make(map[model.Skipper]*model.BoatType),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.skippers = utils.NewCell(s.computeSkippers)
	s.rcPoints = utils.NewCell(s.computeRCPoints)
	s.pointsLists = utils.NewCell(s.computePointsLists)
	s.standings = utils.NewCell(s.computeStandings)
	s.ranks = utils.NewCell(s.computeRanks)
	return s
}

func (s *Series) Name() string               { return s.name }
func (s *Series) Fleet() *model.Fleet        { return s.fleet }
func (s *Series) ValidRequiredSkippers() int { return s.validRequiredSkippers }

// FancyName is the display form of the series name.
func (s *Series) FancyName() string { return utils.FancyName(s.name) }

// AddSkipperBoat registers the default boat a skipper sails in this series.
func (s *Series) AddSkipperBoat(skipper model.Skipper, boat *model.BoatType) error {
	if _, exists := s.boatDict[skipper]; exists {
		return fmt.Errorf("duplicate boat entry in series %s for skipper %s", s.name, skipper)
	}
	s.boatDict[skipper] = boat
	return nil
}

// BoatDict returns a copy of the default skipper-to-boat assignments.
func (s *Series) BoatDict() map[model.Skipper]*model.BoatType {
	out := make(map[model.Skipper]*model.BoatType, len(s.boatDict))
	for k, v := range s.boatDict {
		out[k] = v
	}
	return out
}

// AddRace appends a race; races are scored in insertion order. Adding the
// same race twice is a data error.
func (s *Series) AddRace(race *Race) error {
	for _, r := range s.races {
		if r == race {
			return fmt.Errorf("race %s already added to series %s", race.DateString(), s.name)
		}
	}
	s.races = append(s.races, race)
	race.observe(s.invalidate)
	s.invalidate()
	return nil
}

// invalidate drops every cached aggregate.
func (s *Series) invalidate() {
	s.skippers.Invalidate()
	s.rcPoints.Invalidate()
	s.pointsLists.Invalidate()
	s.standings.Invalidate()
	s.ranks.Invalidate()
}

func (s *Series) Races() []*Race {
	out := make([]*Race, len(s.races))
	copy(out, s.races)
	return out
}

// RaceNum is the one-based number of a race within this series. A race shared
// with the season total carries a different number there, so numbering lives
// on the series rather than the race. Returns 0 for a race not in the series.
func (s *Series) RaceNum(race *Race) int {
	for i, r := range s.races {
		if r == race {
			return i + 1
		}
	}
	return 0
}

// ValidRaces returns the races that count for scoring.
func (s *Series) ValidRaces() []*Race {
	out := make([]*Race, 0, len(s.races))
	for _, r := range s.races {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// LatestRaceDate is the date of the most recent race in the series.
func (s *Series) LatestRaceDate() (time.Time, bool) {
	var latest time.Time
	found := false
	for _, r := range s.races {
		if !found || latest.Before(r.Date()) {
			latest = r.Date()
			found = true
		}
	}
	return latest, found
}

// QualifyCount is the number of counted races a skipper needs for an
// official score: the explicit override, or half the valid races rounded up.
func (s *Series) QualifyCount() int {
	if s.qualifyCountOverride != nil {
		return *s.qualifyCountOverride
	}
	return (len(s.ValidRaces()) + 1) / 2
}

// NumFinished counts the races a skipper finished on the water (RC excluded).
func (s *Series) NumFinished(skipper model.Skipper) int {
	count := 0
	for _, r := range s.races {
		f, ok := r.Finish(skipper)
		if !ok || !f.Finished() {
			continue
		}
		if _, rc := f.(*model.FinishRC); !rc {
			count++
		}
	}
	return count
}

// NumRC counts the races a skipper served as race committee.
func (s *Series) NumRC(skipper model.Skipper) int {
	count := 0
	for _, r := range s.races {
		if f, ok := r.Finish(skipper); ok {
			if _, rc := f.(*model.FinishRC); rc {
				count++
			}
		}
	}
	return count
}

// NumDNF counts the races a skipper started but did not finish.
func (s *Series) NumDNF(skipper model.Skipper) int {
	count := 0
	for _, r := range s.races {
		if f, ok := r.Finish(skipper); ok {
			if _, dnf := f.(*model.FinishDNF); dnf {
				count++
			}
		}
	}
	return count
}

// Qualifies reports whether a skipper's participation meets the qualify
// count. At most two RC races count toward qualification.
func (s *Series) Qualifies(skipper model.Skipper) bool {
	counted := s.NumFinished(skipper) + min(rcSubstitutionCap, s.NumRC(skipper)) + s.NumDNF(skipper)
	return counted >= s.QualifyCount()
}

// AllSkippers returns every skipper seen in any race, in order of first
// appearance.
func (s *Series) AllSkippers() []model.Skipper {
	return s.skippers.Get()
}

func (s *Series) computeSkippers() []model.Skipper {
	seen := make(map[model.Skipper]struct{})
	out := make([]model.Skipper, 0)
	for _, r := range s.races {
		for _, f := range r.Finishes() {
			sk := f.Skipper()
			if _, ok := seen[sk]; !ok {
				seen[sk] = struct{}{}
				out = append(out, sk)
			}
		}
	}
	return out
}

// RCPoints is the credit substituted for a skipper's RC races: the average
// of the skipper's scores from valid races after dropping the single worst,
// rounded to one decimal. Absent when the skipper has no scored races.
func (s *Series) RCPoints(skipper model.Skipper) (decimal.Decimal, bool) {
	pts, ok := s.rcPoints.Get()[skipper]
	return pts, ok
}

func (s *Series) computeRCPoints() map[model.Skipper]decimal.Decimal {
	out := make(map[model.Skipper]decimal.Decimal)
	valid := s.ValidRaces()
	for _, skipper := range s.AllSkippers() {
		values := make([]decimal.Decimal, 0, len(valid))
		for _, r := range valid {
			if pts, ok := r.SkipperPoints()[skipper]; ok {
				values = append(values, pts)
			}
		}
		if len(values) == 0 {
			continue
		}
		slices.SortFunc(values, decimal.Decimal.Cmp)
		if len(values) > 1 {
			values = values[:len(values)-1]
		}
		sum := decimal.Zero
		for _, v := range values {
			sum = sum.Add(v)
		}
		out[skipper] = utils.RoundScore(sum.Div(decimal.NewFromInt(int64(len(values)))))
	}
	return out
}

// PointsList returns the scored/excluded split for a qualifying skipper.
func (s *Series) PointsList(skipper model.Skipper) (PointsList, bool) {
	pl, ok := s.pointsLists.Get()[skipper]
	return pl, ok
}

func (s *Series) computePointsLists() map[model.Skipper]PointsList {
	out := make(map[model.Skipper]PointsList)
	qualifyCount := s.QualifyCount()
	for _, skipper := range s.AllSkippers() {
		if !s.Qualifies(skipper) {
			continue
		}

		rcCredit, hasCredit := s.RCPoints(skipper)
		substituted := 0
		values := make([]decimal.Decimal, 0, len(s.races))
		for _, r := range s.races {
			if !r.ValidForRC(skipper) {
				continue
			}
			if pts, ok := r.SkipperPoints()[skipper]; ok {
				values = append(values, pts)
				continue
			}
			f, entered := r.Finish(skipper)
			if !entered {
				continue
			}
			if _, rc := f.(*model.FinishRC); rc && hasCredit && substituted < rcSubstitutionCap {
				values = append(values, rcCredit)
				substituted++
			}
		}
		if len(values) == 0 {
			continue
		}
		slices.SortFunc(values, decimal.Decimal.Cmp)
		cut := min(qualifyCount, len(values))
		out[skipper] = PointsList{
			Scored:   slices.Clone(values[:cut]),
			Excluded: slices.Clone(values[cut:]),
		}
	}
	return out
}

// TotalPoints is the sum of a qualifying skipper's scored points, rounded to
// one decimal.
func (s *Series) TotalPoints(skipper model.Skipper) (decimal.Decimal, bool) {
	pl, ok := s.PointsList(skipper)
	if !ok {
		return decimal.Decimal{}, false
	}
	sum := decimal.Zero
	for _, v := range pl.Scored {
		sum = sum.Add(v)
	}
	return utils.RoundScore(sum), true
}
