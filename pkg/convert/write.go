package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sailclub/sailscore/pkg/scoring"
)

// WriteLegacyDocs writes boats.yaml and series.yaml for the series into dir,
// creating the directory if needed. These two files are the complete input
// set of the legacy scorer.
func WriteLegacyDocs(s *scoring.Series, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	if err := writeYAML(filepath.Join(dir, "boats.yaml"), BuildBoatsDoc(s)); err != nil {
		return err
	}
	return writeYAML(filepath.Join(dir, "series.yaml"), BuildSeriesDoc(s))
}

func writeYAML(path string, doc any) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
