package score

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sailclub/sailscore/log"
	"github.com/sailclub/sailscore/pkg/config"
	"github.com/sailclub/sailscore/pkg/report"
	"github.com/sailclub/sailscore/pkg/repository"
	"github.com/sailclub/sailscore/pkg/scoring"
)

func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [series...]",
		Short: "computes and prints series standings",
		Long: `Loads the club input files, scores the requested series and prints
their standings tables. Without arguments all series are scored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(args)
		},
	}

	cmd.Flags().BoolVar(&config.Watch, "watch", false,
		"re-score whenever an input file changes")
	cmd.Flags().BoolVar(&config.ShowRaces, "races", false,
		"also print the per-race result tables")

	return cmd
}

func runScore(seriesNames []string) error {
	if err := scoreOnce(seriesNames); err != nil {
		return err
	}
	if !config.Watch {
		return nil
	}
	return watchAndRescore(seriesNames)
}

func scoreOnce(seriesNames []string) error {
	repo, err := repository.Load(
		config.InputDir,
		config.FleetFile,
		config.SkipperFile,
		config.SeriesFile,
		repository.WithLogger(log.Default().Named("repository")))
	if err != nil {
		return err
	}

	selected, err := selectSeries(repo, seriesNames)
	if err != nil {
		return err
	}

	for _, s := range selected {
		fmt.Printf("\n%s\n\n", s.FancyName())
		fmt.Println(report.SeriesTable(s))
		if config.ShowRaces {
			for i, race := range s.Races() {
				fmt.Printf("\nRace %d\n", i+1)
				fmt.Println(report.RaceTable(race))
			}
		}
	}
	return nil
}

func selectSeries(repo *repository.Repository, names []string) ([]*scoring.Series, error) {
	if len(names) == 0 {
		return repo.SeriesSorted(), nil
	}
	selected := make([]*scoring.Series, 0, len(names))
	for _, name := range names {
		s, ok := repo.Series[name]
		if !ok {
			return nil, fmt.Errorf("unknown series %q", name)
		}
		selected = append(selected, s)
	}
	return selected, nil
}

// watchAndRescore blocks, re-running the scoring whenever a file below the
// input folder changes. Editors fire several events per save, so events are
// coalesced over a short window before re-scoring.
func watchAndRescore(seriesNames []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(config.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", config.InputDir, err)
	}

	log.Info("watching for input changes", log.String("dir", config.InputDir))

	const settle = 500 * time.Millisecond
	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("input changed", log.String("file", event.Name))
			if timer == nil {
				timer = time.AfterFunc(settle, func() {
					if err := scoreOnce(seriesNames); err != nil {
						log.Error("re-scoring failed", log.ErrorField(err))
					}
				})
			} else {
				timer.Reset(settle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", err)
		}
	}
}
