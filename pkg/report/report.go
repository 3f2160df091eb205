// Package report renders the computed standings and race results as text
// tables for the console and the static site generator.
package report

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/scoring"
	"github.com/sailclub/sailscore/pkg/utils"
)

// PointsString is the display form of a skipper's series points: the scored
// values comma-joined, the excluded values appended in parentheses. Empty
// for skippers that did not qualify.
func PointsString(s *scoring.Series, skipper model.Skipper) string {
	pl, ok := s.PointsList(skipper)
	if !ok {
		return ""
	}
	scored := strings.Join(lo.Map(pl.Scored, func(d decimal.Decimal, _ int) string {
		return d.StringFixed(1)
	}), ", ")
	if len(pl.Excluded) == 0 {
		return scored
	}
	excluded := strings.Join(lo.Map(pl.Excluded, func(d decimal.Decimal, _ int) string {
		return d.StringFixed(1)
	}), ", ")
	return fmt.Sprintf("%s (%s)", scored, excluded)
}

// SeriesTable renders the standings of a series in the traditional scoreboard
// layout: one row per skipper in standings order with each race's cell, the
// RC credit ("na" when absent) and the total score ("DNQ" for
// non-qualifiers).
func SeriesTable(s *scoring.Series) string {
	races := s.Races()
	lines := []string{
		fmt.Sprintf("%24s: %d", "Races Held", len(races)),
		fmt.Sprintf("%24s: %d", "Races Needed to Qualify", s.QualifyCount()),
		fmt.Sprintf("%20s%*s%8s%8s", "Name / Boat", 6*len(races), "Races", "RC Pts", "Points"),
	}

	numbers := strings.Repeat(" ", 20)
	rules := strings.Repeat(" ", 20)
	for i := range races {
		numbers += fmt.Sprintf("%6d", i+1)
		rules += fmt.Sprintf("%6s", "----")
	}
	lines = append(lines, numbers, rules)

	for _, skipper := range s.SkippersSorted() {
		row := fmt.Sprintf("%20s", skipper.Identifier)
		for _, race := range races {
			cell := race.ResultLabel(skipper)
			if cell == "" {
				cell = "-"
			}
			row += fmt.Sprintf("%6s", cell)
		}
		row += " |"

		if rcPts, ok := s.RCPoints(skipper); ok {
			row += fmt.Sprintf("%6s", rcPts.StringFixed(1))
		} else {
			row += fmt.Sprintf("%6s", "na")
		}
		if total, ok := s.TotalPoints(skipper); ok {
			row += fmt.Sprintf("%8s", total.StringFixed(1))
		} else {
			row += fmt.Sprintf("%8s", "DNQ")
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

// RaceTable renders a single race: metadata header followed by one row per
// entrant in result order with raw and corrected times (or the symbolic
// outcome) and the placement score.
func RaceTable(r *scoring.Race) string {
	wind := "n/a"
	if bf, ok := r.WindBF(); ok {
		wind = fmt.Sprintf("%d Bf", bf)
	}
	rcRoster := strings.Join(lo.Map(r.RCSkippers(), func(s model.Skipper, _ int) string {
		return s.Identifier
	}), ", ")

	lines := []string{
		fmt.Sprintf("%12s: %s", "Date", r.DateString()),
		fmt.Sprintf("%12s: %s", "Wind", wind),
		fmt.Sprintf("%12s: %s", "RC", rcRoster),
	}
	if r.Notes() != "" {
		lines = append(lines, fmt.Sprintf("%12s: %s", "Notes", r.Notes()))
	}
	lines = append(lines,
		fmt.Sprintf("%20s%8s%10s%12s%8s", "Skipper", "Boat", "Time", "Corrected", "Score"))

	points := r.SkipperPoints()
	for _, finish := range r.ResultsSorted() {
		skipper := finish.Skipper()
		score := "-"
		if pts, ok := points[skipper]; ok {
			score = pts.StringFixed(1)
		}

		var rawCol, correctedCol string
		if t, ok := finish.(*model.FinishTime); ok {
			rawCol = utils.FormatTime(t.ElapsedS())
			correctedCol = utils.FormatTime(int(t.CorrectedTimeS()))
		} else {
			rawCol = finish.Label()
			correctedCol = "-"
		}
		lines = append(lines, fmt.Sprintf("%20s%8s%10s%12s%8s",
			skipper.Identifier, finish.Boat().DisplayCode, rawCol, correctedCol, score))
	}
	return strings.Join(lines, "\n")
}
