package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Finish is one skipper's outcome in a single race. It is a closed sum of
// FinishTime, FinishDNF, FinishDQ, FinishFIP and FinishRC; scoring code
// dispatches on the concrete type.
type Finish interface {
	Skipper() Skipper
	Boat() *BoatType
	// Finished reports whether the entry counts as having completed the race.
	Finished() bool
	// Label is the symbolic result name used in reports ("Time", "DNF", ...).
	Label() string

	sealed()
}

type finishBase struct {
	skipper Skipper
	boat    *BoatType
}

func (f finishBase) Skipper() Skipper { return f.skipper }
func (f finishBase) Boat() *BoatType  { return f.boat }
func (finishBase) sealed()            {}

// FinishTime is a timed finish. The corrected time is derived lazily and
// cached; Reset drops the cached value after a structural change.
type FinishTime struct {
	finishBase
	WindBF      int
	InputTimeS  int
	OffsetTimeS int

	correctedTimeS *int64
}

func NewFinishTime(skipper Skipper, boat *BoatType, windBF, inputTimeS, offsetTimeS int) *FinishTime {
	return &FinishTime{
		finishBase:  finishBase{skipper: skipper, boat: boat},
		WindBF:      windBF,
		InputTimeS:  inputTimeS,
		OffsetTimeS: offsetTimeS,
	}
}

func (f *FinishTime) Finished() bool { return true }
func (f *FinishTime) Label() string  { return "Time" }

// ElapsedS is the raw time minus the race offset.
func (f *FinishTime) ElapsedS() int { return f.InputTimeS - f.OffsetTimeS }

// CorrectedTimeS scales the elapsed time by 100/handicap and rounds to the
// nearest whole second, ties up.
func (f *FinishTime) CorrectedTimeS() int64 {
	if f.correctedTimeS == nil {
		dpn := f.boat.DpnForBeaufort(f.WindBF)
		corrected := decimal.NewFromInt(int64(f.ElapsedS())).
			Mul(decimal.NewFromInt(100)).
			Div(dpn.Value()).
			Round(0).
			IntPart()
		f.correctedTimeS = &corrected
	}
	return *f.correctedTimeS
}

func (f *FinishTime) Reset() { f.correctedTimeS = nil }

// FinishDNF marks an entry that started but did not finish.
type FinishDNF struct {
	finishBase
}

func NewFinishDNF(skipper Skipper, boat *BoatType) *FinishDNF {
	return &FinishDNF{finishBase{skipper: skipper, boat: boat}}
}

func (f *FinishDNF) Finished() bool { return false }
func (f *FinishDNF) Label() string  { return "DNF" }

// FinishDQ marks a disqualified entry.
type FinishDQ struct {
	finishBase
}

func NewFinishDQ(skipper Skipper, boat *BoatType) *FinishDQ {
	return &FinishDQ{finishBase{skipper: skipper, boat: boat}}
}

func (f *FinishDQ) Finished() bool { return false }
func (f *FinishDQ) Label() string  { return "DQ" }

// FinishFIP is a finish-in-place: the committee assigned the place directly
// instead of recording a time.
type FinishFIP struct {
	finishBase
	Place int
}

func NewFinishFIP(skipper Skipper, boat *BoatType, place int) *FinishFIP {
	return &FinishFIP{finishBase: finishBase{skipper: skipper, boat: boat}, Place: place}
}

func (f *FinishFIP) Finished() bool { return true }
func (f *FinishFIP) Label() string  { return fmt.Sprintf("FIP_%d", f.Place) }

// FinishRC credits a skipper who ran race committee duty instead of racing.
// RC entries are scored at the series level, not by the race.
type FinishRC struct {
	finishBase
}

func NewFinishRC(skipper Skipper, boat *BoatType) *FinishRC {
	return &FinishRC{finishBase{skipper: skipper, boat: boat}}
}

func (f *FinishRC) Finished() bool { return true }
func (f *FinishRC) Label() string  { return "RC" }
