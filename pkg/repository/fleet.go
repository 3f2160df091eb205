package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sailclub/sailscore/log"
	"github.com/sailclub/sailscore/pkg/model"
)

type fleetDoc struct {
	PortsmouthTable string     `yaml:"portsmouth_table"`
	Source          string     `yaml:"source"`
	WindMap         windMapDoc `yaml:"wind_map"`
}

type windMapDoc struct {
	DefaultIndex int            `yaml:"default_index"`
	MapValues    []windRangeDoc `yaml:"map_values"`
}

type windRangeDoc struct {
	StartBF int `yaml:"start_bf"`
	EndBF   int `yaml:"end_bf"`
	Index   int `yaml:"index"`
}

// portsmouthHeader is the required column layout of the handicap table CSV.
var portsmouthHeader = []string{"boat", "class", "code", "dpn", "dpn1", "dpn2", "dpn3", "dpn4"}

func (r *Repository) loadFleets(path string) (map[string]*model.Fleet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fleet file: %w", err)
	}
	docs := make(map[string]fleetDoc)
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing fleet file %s: %w", path, err)
	}

	fleets := make(map[string]*model.Fleet, len(docs))
	for name, doc := range docs {
		windMap := model.NewWindMap(doc.WindMap.DefaultIndex)
		for _, rng := range doc.WindMap.MapValues {
			if err := windMap.AddRange(rng.StartBF, rng.EndBF, rng.Index); err != nil {
				return nil, fmt.Errorf("fleet %s: %w", name, err)
			}
		}

		tablePath := filepath.Join(filepath.Dir(path), doc.PortsmouthTable)
		boats, err := r.loadPortsmouthTable(tablePath, name, windMap)
		if err != nil {
			return nil, fmt.Errorf("fleet %s: %w", name, err)
		}
		fleets[name] = model.NewFleet(name, boats, windMap, doc.Source)
	}
	return fleets, nil
}

// loadPortsmouthTable reads the pre-calculated handicap table. Boats without
// a primary DPN value are skipped with a diagnostic; duplicate boat codes are
// a data error.
func (r *Repository) loadPortsmouthTable(
	path, fleetName string,
	windMap *model.WindMap,
) (map[string]*model.BoatType, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading portsmouth table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing portsmouth table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("portsmouth table %s is empty", path)
	}
	if err := checkHeader(rows[0], portsmouthHeader); err != nil {
		return nil, fmt.Errorf("portsmouth table %s: %w", path, err)
	}

	boats := make(map[string]*model.BoatType)
	for _, row := range rows[1:] {
		if len(row) != len(portsmouthHeader) {
			r.log.Warn("skipping malformed portsmouth row",
				log.String("row", strings.Join(row, ",")))
			continue
		}

		var dpnValues [model.DpnSlots]*model.HandicapNumber
		for i := 0; i < model.DpnSlots; i++ {
			cell := strings.TrimSpace(row[3+i])
			if cell == "" {
				continue
			}
			dpn, err := model.ParseHandicapNumber(cell)
			if err != nil {
				return nil, fmt.Errorf("boat %s: %w", row[0], err)
			}
			dpnValues[i] = &dpn
		}

		displayCode := strings.TrimSpace(row[2])
		code := strings.ReplaceAll(strings.ToLower(displayCode), "/", "_")
		if dpnValues[0] == nil {
			r.log.Info("skipping boat without primary DPN", log.String("code", code))
			continue
		}
		if _, exists := boats[code]; exists {
			return nil, fmt.Errorf("duplicate boat code %s", code)
		}

		class := model.BoatClass(strings.ToLower(strings.TrimSpace(row[1])))
		if class != model.ClassCenterboard && class != model.ClassKeelboat {
			r.log.Warn("unknown boat class",
				log.String("class", string(class)),
				log.String("boat", row[0]))
			class = model.ClassUnknown
		}

		boats[code] = model.NewBoatType(
			strings.TrimSpace(row[0]), fleetName, class, code, displayCode, dpnValues, windMap)
	}
	return boats, nil
}

func checkHeader(row, expected []string) error {
	if len(row) != len(expected) {
		return fmt.Errorf("header has %d columns, expected %d", len(row), len(expected))
	}
	for i, want := range expected {
		if got := strings.ToLower(strings.TrimSpace(row[i])); got != want {
			return fmt.Errorf("header column %d is %q, expected %q", i, got, want)
		}
	}
	return nil
}
