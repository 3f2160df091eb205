package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/utils"
)

// Race holds the entries of a single race and derives each skipper's
// placement score. Derived values are memoized; adding a finish invalidates
// them and cascades to the owning series.
type Race struct {
	fleet            *model.Fleet
	boatDict         map[model.Skipper]*model.BoatType
	requiredSkippers int
	date             time.Time
	windBF           *int
	notes            string

	finishes   map[model.Skipper]model.Finish
	entryOrder []model.Skipper

	observers []func()

	points *utils.Cell[map[model.Skipper]decimal.Decimal]
}

type RaceOption func(r *Race)

// WithWindBF records the observed Beaufort wind strength. A race without a
// wind observation is never valid for scoring.
func WithWindBF(bf int) RaceOption {
	return func(r *Race) {
		r.windBF = &bf
	}
}

func WithNotes(notes string) RaceOption {
	return func(r *Race) {
		r.notes = notes
	}
}

func NewRace(
	fleet *model.Fleet,
	boatDict map[model.Skipper]*model.BoatType,
	requiredSkippers int,
	date time.Time,
	opts ...RaceOption,
) *Race {
	r := &Race{
		fleet:            fleet,
		boatDict:         make(map[model.Skipper]*model.BoatType, len(boatDict)),
		requiredSkippers: requiredSkippers,
		date:             date,
		finishes:         make(map[model.Skipper]model.Finish),
	}
	for k, v := range boatDict {
		r.boatDict[k] = v
	}
	for _, opt := range opts {
		opt(r)
	}
	r.points = utils.NewCell(r.computePoints)
	return r
}

func (r *Race) Fleet() *model.Fleet { return r.fleet }
func (r *Race) Date() time.Time     { return r.date }
func (r *Race) Notes() string       { return r.notes }

// WindBF returns the Beaufort observation, if one was recorded.
func (r *Race) WindBF() (int, bool) {
	if r.windBF == nil {
		return 0, false
	}
	return *r.windBF, true
}

// DateString is the display form of the race date.
func (r *Race) DateString() string {
	return r.date.Format("January 02, 2006")
}

// Boat returns the boat a skipper sails in this race.
func (r *Race) Boat(skipper model.Skipper) (*model.BoatType, bool) {
	b, ok := r.boatDict[skipper]
	return b, ok
}

// AddFinish registers a skipper's outcome. A skipper may have at most one
// finish per race, and the finish's boat must match the skipper's boat for
// the race.
func (r *Race) AddFinish(finish model.Finish) error {
	skipper := finish.Skipper()
	if _, exists := r.finishes[skipper]; exists {
		return fmt.Errorf("duplicate race finish for skipper %s", skipper)
	}
	if boat, ok := r.boatDict[skipper]; ok {
		if boat != finish.Boat() {
			return fmt.Errorf("finish boat %s does not match race boat %s for skipper %s",
				finish.Boat().Code, boat.Code, skipper)
		}
	} else {
		r.boatDict[skipper] = finish.Boat()
	}
	r.finishes[skipper] = finish
	r.entryOrder = append(r.entryOrder, skipper)
	r.Reset()
	return nil
}

// Finish returns a skipper's entry in this race, if any.
func (r *Race) Finish(skipper model.Skipper) (model.Finish, bool) {
	f, ok := r.finishes[skipper]
	return f, ok
}

// Reset drops all derived state and notifies every owning series. A race is
// shared between its own series and the season total, so all observers are
// invalidated.
func (r *Race) Reset() {
	r.points.Invalidate()
	for _, f := range r.finishes {
		if t, ok := f.(*model.FinishTime); ok {
			t.Reset()
		}
	}
	for _, notify := range r.observers {
		notify()
	}
}

// observe registers a series to be invalidated when the race changes.
func (r *Race) observe(notify func()) {
	r.observers = append(r.observers, notify)
}

// Finishes returns all entries in insertion order.
func (r *Race) Finishes() []model.Finish {
	out := make([]model.Finish, 0, len(r.entryOrder))
	for _, s := range r.entryOrder {
		out = append(out, r.finishes[s])
	}
	return out
}

// StartingFinishes returns the entries that started the race; RC duty does
// not count as a starter.
func (r *Race) StartingFinishes() []model.Finish {
	out := make([]model.Finish, 0, len(r.entryOrder))
	for _, f := range r.Finishes() {
		if _, rc := f.(*model.FinishRC); !rc {
			out = append(out, f)
		}
	}
	return out
}

// TimedFinishes returns the entries that finished with a recorded time.
func (r *Race) TimedFinishes() []*model.FinishTime {
	out := make([]*model.FinishTime, 0, len(r.entryOrder))
	for _, f := range r.Finishes() {
		if t, ok := f.(*model.FinishTime); ok {
			out = append(out, t)
		}
	}
	return out
}

// RCSkippers returns the race committee roster in insertion order.
func (r *Race) RCSkippers() []model.Skipper {
	out := make([]model.Skipper, 0)
	for _, f := range r.Finishes() {
		if _, ok := f.(*model.FinishRC); ok {
			out = append(out, f.Skipper())
		}
	}
	return out
}

// Valid reports whether the race counts for scoring: a wind observation was
// recorded and enough non-RC entries started.
func (r *Race) Valid() bool {
	return r.windBF != nil && len(r.StartingFinishes()) >= r.requiredSkippers
}

// ValidForRC reports whether the race counts toward the skipper's series
// score. RC duty counts even when the race itself is invalid.
func (r *Race) ValidForRC(skipper model.Skipper) bool {
	if r.Valid() {
		return true
	}
	f, ok := r.finishes[skipper]
	if !ok {
		return false
	}
	_, rc := f.(*model.FinishRC)
	return rc
}

// MinTimeS is the fastest corrected time of the race.
func (r *Race) MinTimeS() (int64, bool) {
	timed := r.TimedFinishes()
	if len(timed) == 0 {
		return 0, false
	}
	minTime := timed[0].CorrectedTimeS()
	for _, t := range timed[1:] {
		if ct := t.CorrectedTimeS(); ct < minTime {
			minTime = ct
		}
	}
	return minTime, true
}

// SkipperPoints returns each skipper's placement score, memoized. Skippers
// without a score (RC duty) have no entry in the map.
func (r *Race) SkipperPoints() map[model.Skipper]decimal.Decimal {
	return r.points.Get()
}

// computePoints implements the placement algorithm: timed finishes are
// grouped by corrected time and tied groups split their places evenly; FIP
// entries score their declared place; DNF scores the starter count and DQ the
// starter count plus two. RC entries are left unscored.
func (r *Race) computePoints() map[model.Skipper]decimal.Decimal {
	result := make(map[model.Skipper]decimal.Decimal)

	timed := r.TimedFinishes()
	countByTime := make(map[int64]int64)
	for _, t := range timed {
		countByTime[t.CorrectedTimeS()]++
	}
	times := make([]int64, 0, len(countByTime))
	for ct := range countByTime {
		times = append(times, ct)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	// Within a tied group of n entries starting at place p, every member
	// scores average(p, ..., p+n-1).
	placeByTime := make(map[int64]decimal.Decimal, len(times))
	place := int64(1)
	for _, ct := range times {
		n := countByTime[ct]
		sum := int64(0)
		for p := place; p < place+n; p++ {
			sum += p
		}
		placeByTime[ct] = decimal.NewFromInt(sum).Div(decimal.NewFromInt(n))
		place += n
	}
	for _, t := range timed {
		result[t.Skipper()] = placeByTime[t.CorrectedTimeS()]
	}

	starters := decimal.NewFromInt(int64(len(r.StartingFinishes())))
	for _, f := range r.Finishes() {
		switch v := f.(type) {
		case *model.FinishFIP:
			result[v.Skipper()] = decimal.NewFromInt(int64(v.Place))
		case *model.FinishDNF:
			result[v.Skipper()] = starters
		case *model.FinishDQ:
			result[v.Skipper()] = starters.Add(decimal.NewFromInt(2))
		}
	}

	for skipper, score := range result {
		result[skipper] = utils.RoundScore(score)
	}
	return result
}

// ResultLabel is the display cell for a skipper in this race: the score when
// one exists, the symbolic finish label otherwise, or "" when the skipper was
// not entered.
func (r *Race) ResultLabel(skipper model.Skipper) string {
	f, ok := r.finishes[skipper]
	if !ok {
		return ""
	}
	if score, scored := r.SkipperPoints()[skipper]; scored {
		return score.StringFixed(1)
	}
	return f.Label()
}

// ResultsSorted returns the scored entries ordered by score, followed by the
// unscored ones in insertion order.
func (r *Race) ResultsSorted() []model.Finish {
	points := r.SkipperPoints()
	scored := make([]model.Finish, 0, len(r.entryOrder))
	unscored := make([]model.Finish, 0)
	for _, f := range r.Finishes() {
		if _, ok := points[f.Skipper()]; ok {
			scored = append(scored, f)
		} else {
			unscored = append(unscored, f)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return points[scored[i].Skipper()].Cmp(points[scored[j].Skipper()]) < 0
	})
	return append(scored, unscored...)
}
