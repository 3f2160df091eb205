package check

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sailclub/sailscore/log"
	"github.com/sailclub/sailscore/pkg/config"
	"github.com/sailclub/sailscore/pkg/convert"
	"github.com/sailclub/sailscore/pkg/repository"
	"github.com/sailclub/sailscore/pkg/scoring"
)

var checkDir string

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [series...]",
		Short: "diffs engine results against legacy scorer dumps",
		Long: `Compares the engine's per-skipper results of each series against the
dumper.yaml the historical Perl scorer wrote for it. The dump for a series is
expected at <check-dir>/<series>/dumper.yaml. Exits non-zero on any mismatch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}

	cmd.Flags().StringVar(&checkDir, "check-dir",
		"checks",
		"Folder containing one legacy dump folder per series")

	return cmd
}

func runCheck(seriesNames []string) error {
	repo, err := repository.Load(
		config.InputDir,
		config.FleetFile,
		config.SkipperFile,
		config.SeriesFile,
		repository.WithLogger(log.Default().Named("repository")))
	if err != nil {
		return err
	}

	selected := repo.SeriesSorted()
	if len(seriesNames) > 0 {
		selected = make([]*scoring.Series, 0, len(seriesNames))
		for _, name := range seriesNames {
			s, ok := repo.Series[name]
			if !ok {
				return fmt.Errorf("unknown series %q", name)
			}
			selected = append(selected, s)
		}
	}

	failures := 0
	for _, s := range selected {
		dumpPath := filepath.Join(checkDir, s.Name(), "dumper.yaml")
		dump, err := convert.ReadDumpFile(dumpPath)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name(), err)
		}

		mismatches := convert.CheckSeries(s, dump)
		if len(mismatches) == 0 {
			continue
		}
		failures++
		fmt.Printf("Series %s\n", s.Name())
		for _, m := range mismatches {
			fmt.Printf("  %s\n", m)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d series failed the legacy check", failures)
	}
	fmt.Println("All Pass!")
	return nil
}
