package model

import (
	"fmt"
	"sort"
)

// WindRange maps an inclusive Beaufort range onto a handicap table column.
type WindRange struct {
	StartBF int
	EndBF   int
	Index   int
}

// Label is the descriptive range string used by reports, e.g. "2-3" or "0".
func (w WindRange) Label() string {
	if w.StartBF == w.EndBF {
		return fmt.Sprintf("%d", w.StartBF)
	}
	return fmt.Sprintf("%d-%d", w.StartBF, w.EndBF)
}

// WindMap is per-fleet configuration describing which Beaufort strengths a
// handicap column was published for. Handicap selection itself uses the fixed
// Portsmouth thresholds (see BoatType.DpnForBeaufort); the map carries the
// range labels for reporting and the legacy export.
type WindMap struct {
	def    WindRange
	ranges []WindRange
}

func NewWindMap(defaultIndex int) *WindMap {
	return &WindMap{def: WindRange{StartBF: 0, EndBF: 0, Index: defaultIndex}}
}

// AddRange registers a Beaufort range for a column index. Overlapping ranges
// are a configuration error.
func (m *WindMap) AddRange(startBF, endBF, index int) error {
	if startBF > endBF {
		return fmt.Errorf("wind range start %d must be <= end %d", startBF, endBF)
	}
	for _, r := range m.ranges {
		for _, v := range []int{startBF, endBF} {
			if r.StartBF <= v && v <= r.EndBF {
				return fmt.Errorf("wind range value %d overlaps existing range %s", v, r.Label())
			}
		}
	}
	m.ranges = append(m.ranges, WindRange{StartBF: startBF, EndBF: endBF, Index: index})
	sort.Slice(m.ranges, func(i, j int) bool { return m.ranges[i].StartBF < m.ranges[j].StartBF })
	return nil
}

// RangeForBeaufort returns the registered range containing bf, or the default.
func (m *WindMap) RangeForBeaufort(bf int) WindRange {
	for _, r := range m.ranges {
		if r.StartBF <= bf && bf <= r.EndBF {
			return r
		}
	}
	return m.def
}

// Ranges returns the registered ranges ordered by starting Beaufort number.
func (m *WindMap) Ranges() []WindRange {
	out := make([]WindRange, len(m.ranges))
	copy(out, m.ranges)
	return out
}

func (m *WindMap) DefaultIndex() int { return m.def.Index }
