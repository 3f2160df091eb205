package model

import (
	"fmt"
	"sort"
	"strings"
)

// Fleet is a named, immutable collection of boat types sharing one wind map.
// Built once at load time, read-only afterwards.
type Fleet struct {
	Name   string
	Source string

	boatTypes map[string]*BoatType
	windMap   *WindMap
}

func NewFleet(name string, boatTypes map[string]*BoatType, windMap *WindMap, source string) *Fleet {
	return &Fleet{
		Name:      name,
		Source:    source,
		boatTypes: boatTypes,
		windMap:   windMap,
	}
}

// Boat looks up a boat type by its code, case-insensitively.
func (f *Fleet) Boat(code string) (*BoatType, error) {
	if b, ok := f.boatTypes[strings.ToLower(code)]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("boat %q does not exist in fleet %s", code, f.Name)
}

// BoatTypes returns the boats of the fleet sorted by code.
func (f *Fleet) BoatTypes() []*BoatType {
	out := make([]*BoatType, 0, len(f.boatTypes))
	for _, b := range f.boatTypes {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (f *Fleet) WindMap() *WindMap { return f.windMap }

func (f *Fleet) Size() int { return len(f.boatTypes) }
