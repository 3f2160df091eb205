package scoring

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sailclub/sailscore/pkg/model"
)

// SkippersSorted returns all skippers of the series in standings order:
// qualifiers first, ordered by the scoring comparator; non-qualifiers after,
// ordered by RC credit then identifier. The sort is stable, so skippers that
// compare fully tied keep their first-appearance order.
func (s *Series) SkippersSorted() []model.Skipper {
	return s.standings.Get()
}

func (s *Series) computeStandings() []model.Skipper {
	sorted := slices.Clone(s.AllSkippers())
	slices.SortStableFunc(sorted, s.compareSkippers)
	return sorted
}

// compareSkippers is the standings comparator (ascending = better).
func (s *Series) compareSkippers(a, b model.Skipper) int {
	aq, bq := s.Qualifies(a), s.Qualifies(b)
	switch {
	case aq && !bq:
		return -1
	case !aq && bq:
		return 1
	case aq && bq:
		return s.compareQualified(a, b)
	default:
		return s.compareNonQualified(a, b)
	}
}

// compareQualified orders two qualifying skippers:
//  1. lower total score wins;
//  2. first differing element of the ascending scored points lists wins;
//  3. the better score in the most recent race where both scored wins;
//  4. otherwise fully tied.
func (s *Series) compareQualified(a, b model.Skipper) int {
	aTotal, aOK := s.TotalPoints(a)
	bTotal, bOK := s.TotalPoints(b)
	switch {
	case aOK && !bOK:
		return -1
	case !aOK && bOK:
		return 1
	case !aOK && !bOK:
		return 0
	}
	if c := aTotal.Cmp(bTotal); c != 0 {
		return c
	}

	aList, _ := s.PointsList(a)
	bList, _ := s.PointsList(b)
	for i := 0; i < min(len(aList.Scored), len(bList.Scored)); i++ {
		if c := aList.Scored[i].Cmp(bList.Scored[i]); c != 0 {
			return c
		}
	}

	for i := len(s.races) - 1; i >= 0; i-- {
		points := s.races[i].SkipperPoints()
		aPts, aScored := points[a]
		bPts, bScored := points[b]
		if aScored && bScored {
			if c := aPts.Cmp(bPts); c != 0 {
				return c
			}
		}
	}
	return 0
}

// compareNonQualified orders two non-qualifying skippers by RC credit (a
// skipper without any credit ranks below one that has it), falling back to
// identifier order.
func (s *Series) compareNonQualified(a, b model.Skipper) int {
	aCredit, aOK := s.RCPoints(a)
	bCredit, bOK := s.RCPoints(b)
	switch {
	case aOK && !bOK:
		return -1
	case !aOK && bOK:
		return 1
	case aOK && bOK:
		if c := aCredit.Cmp(bCredit); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Identifier, b.Identifier)
}

// Rank returns a qualifying skipper's standing. Skippers with equal total
// scores share a rank; the next distinct score takes its one-based position
// in the sorted order (competition ranking).
func (s *Series) Rank(skipper model.Skipper) (int, bool) {
	rank, ok := s.ranks.Get()[skipper]
	return rank, ok
}

func (s *Series) computeRanks() map[model.Skipper]int {
	ranks := make(map[model.Skipper]int)
	pos := 0
	prevRank := 0
	var prevTotal *decimal.Decimal
	for _, skipper := range s.SkippersSorted() {
		if !s.Qualifies(skipper) {
			continue
		}
		pos++
		total, ok := s.TotalPoints(skipper)
		if ok && prevTotal != nil && total.Equal(*prevTotal) {
			ranks[skipper] = prevRank
		} else {
			ranks[skipper] = pos
			prevRank = pos
		}
		if ok {
			t := total
			prevTotal = &t
		} else {
			prevTotal = nil
		}
	}
	return ranks
}
