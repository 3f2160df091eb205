package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/sailclub/sailscore/pkg/model"
)

var skipperHeader = []string{"identifier"}

func (r *Repository) loadSkippers(path string) (map[string]model.Skipper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading skipper file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing skipper file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("skipper file %s is empty", path)
	}
	if err := checkHeader(rows[0], skipperHeader); err != nil {
		return nil, fmt.Errorf("skipper file %s: %w", path, err)
	}

	skippers := make(map[string]model.Skipper)
	for _, row := range rows[1:] {
		identifier := strings.TrimSpace(row[0])
		if identifier == "" {
			return nil, fmt.Errorf("cannot add a skipper without an identifier")
		}
		if _, exists := skippers[identifier]; exists {
			return nil, fmt.Errorf("skipper %s cannot be added twice", identifier)
		}
		skippers[identifier] = model.NewSkipper(identifier)
	}
	return skippers, nil
}
