// Package convert builds the YAML documents consumed by the club's
// historical Perl race scorer and reads the dump file it produces, so the
// engine's results can be regression-checked against it.
package convert

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sailclub/sailscore/pkg/model"
	"github.com/sailclub/sailscore/pkg/scoring"
)

// plainNumber marshals a decimal string as an unquoted YAML scalar. The Perl
// scorer reads handicaps as numbers, so quoting them would break it.
type plainNumber string

func (n plainNumber) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!float",
		Value: string(n),
	}, nil
}

// BoatsDoc maps boat code to wind range label to handicap value.
type BoatsDoc map[string]map[string]plainNumber

// BuildBoatsDoc collects the handicap table for every boat sailed in the
// series, one entry per wind range of the fleet's wind map. Ranges without
// their own handicap fall back to the primary number, mirroring how race
// correction treats missing values.
func BuildBoatsDoc(s *scoring.Series) BoatsDoc {
	doc := make(BoatsDoc)
	windRanges := s.Fleet().WindMap().Ranges()

	for _, boat := range boatsSailed(s) {
		entry := make(map[string]plainNumber, len(windRanges))
		for _, wr := range windRanges {
			dpn, ok := boat.Dpn(wr.Index)
			if !ok {
				dpn = boat.PrimaryDpn()
			}
			entry[wr.Label()] = plainNumber(dpn.Value().String())
		}
		doc[boat.Code] = entry
	}
	return doc
}

func boatsSailed(s *scoring.Series) []*model.BoatType {
	seen := make(map[string]*model.BoatType)
	for _, race := range s.Races() {
		for _, finish := range race.Finishes() {
			boat := finish.Boat()
			if _, ok := seen[boat.Code]; !ok {
				seen[boat.Code] = boat
			}
		}
	}

	boats := make([]*model.BoatType, 0, len(seen))
	for _, b := range seen {
		boats = append(boats, b)
	}
	sort.Slice(boats, func(i, j int) bool { return boats[i].Code < boats[j].Code })
	return boats
}
