package export

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

func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [series...]",
		Short: "writes legacy scorer input files",
		Long: `Writes boats.yaml and series.yaml for each series in the format read
by the historical Perl scorer, one folder per series below the output folder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}

	cmd.Flags().StringVarP(&config.OutputDir, "output-dir", "o",
		"export",
		"Folder receiving the per-series export folders")

	return cmd
}

func runExport(seriesNames []string) error {
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

	for _, s := range selected {
		dir := filepath.Join(config.OutputDir, s.Name())
		if err := convert.WriteLegacyDocs(s, dir); err != nil {
			return fmt.Errorf("exporting series %s: %w", s.Name(), err)
		}
		log.Info("series exported",
			log.String("series", s.Name()),
			log.String("dir", dir))
	}
	return nil
}
