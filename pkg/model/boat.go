package model

import (
	"github.com/sailclub/sailscore/log"
)

// BoatClass is the hull category of a boat design.
type BoatClass string

const (
	ClassCenterboard BoatClass = "centerboard"
	ClassKeelboat    BoatClass = "keelboat"
	ClassUnknown     BoatClass = "unknown"
)

// DpnSlots is the number of handicap columns per boat: the primary DPN plus
// one per wind bucket.
const DpnSlots = 5

// BoatType holds one boat design's Portsmouth handicap table. The zero slot
// is the primary (wind-independent) handicap and must always be present;
// slots 1-4 are the wind-dependent columns and may be missing.
type BoatType struct {
	Name        string
	FleetName   string
	Class       BoatClass
	Code        string
	DisplayCode string

	dpnValues [DpnSlots]*HandicapNumber
	windMap   *WindMap
}

func NewBoatType(
	name, fleetName string,
	class BoatClass,
	code, displayCode string,
	dpnValues [DpnSlots]*HandicapNumber,
	windMap *WindMap,
) *BoatType {
	return &BoatType{
		Name:        name,
		FleetName:   fleetName,
		Class:       class,
		Code:        code,
		DisplayCode: displayCode,
		dpnValues:   dpnValues,
		windMap:     windMap,
	}
}

// PrimaryDpn is the wind-independent default handicap.
func (b *BoatType) PrimaryDpn() HandicapNumber { return *b.dpnValues[0] }

// Dpn returns the handicap stored in the given column, if any.
func (b *BoatType) Dpn(slot int) (HandicapNumber, bool) {
	if slot < 0 || slot >= DpnSlots || b.dpnValues[slot] == nil {
		return HandicapNumber{}, false
	}
	return *b.dpnValues[slot], true
}

func (b *BoatType) WindMap() *WindMap { return b.windMap }

// dpnSlotForBeaufort holds the fixed Portsmouth thresholds. The configurable
// wind map is descriptive only and is not consulted here.
func dpnSlotForBeaufort(beaufort int) int {
	switch {
	case beaufort <= 1:
		return 1
	case beaufort <= 3:
		return 2
	case beaufort <= 4:
		return 3
	default:
		return 4
	}
}

// DpnForBeaufort selects the handicap for the observed wind strength. A boat
// without a value for the selected column falls back to the primary handicap
// with a diagnostic; the fallback never fails.
func (b *BoatType) DpnForBeaufort(beaufort int) HandicapNumber {
	slot := dpnSlotForBeaufort(beaufort)
	if dpn := b.dpnValues[slot]; dpn != nil {
		return *dpn
	}
	log.Default().Warn("no handicap for wind bucket, using primary DPN",
		log.String("code", b.Code),
		log.String("fleet", b.FleetName),
		log.Int("beaufort", beaufort))
	return *b.dpnValues[0]
}

// NeedsHandicapNote reports whether any handicap carries a non-standard
// pedigree, requiring the suspect-handicap footnote on reports.
func (b *BoatType) NeedsHandicapNote() bool {
	for _, dpn := range b.dpnValues {
		if dpn != nil && dpn.Pedigree() != PedigreeStandard {
			return true
		}
	}
	return false
}
