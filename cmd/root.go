package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sailclub/sailscore/log"
	checkCmd "github.com/sailclub/sailscore/pkg/cmd/check"
	exportCmd "github.com/sailclub/sailscore/pkg/cmd/export"
	scoreCmd "github.com/sailclub/sailscore/pkg/cmd/score"
	"github.com/sailclub/sailscore/pkg/config"
	"github.com/sailclub/sailscore/version"
)

const envPrefix = "SAILSCORE"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "sailscore",
	Short:   "Handicap scoring for the club race series",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := log.New(config.LogLevel, config.LogFilter)
		if err != nil {
			return fmt.Errorf("configuring logger: %w", err)
		}
		log.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.sailscore.yml)")

	rootCmd.PersistentFlags().StringVar(&config.InputDir, "input-dir",
		"input",
		"Folder containing the club input files")
	rootCmd.PersistentFlags().StringVar(&config.FleetFile, "fleet-file",
		"fleets.yaml",
		"Fleet definition file within the input folder")
	rootCmd.PersistentFlags().StringVar(&config.SkipperFile, "skipper-file",
		"skippers.csv",
		"Skipper roster file within the input folder")
	rootCmd.PersistentFlags().StringVar(&config.SeriesFile, "series-file",
		"series.yaml",
		"Series definition file within the input folder")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"Log level (zap log level values)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilter, "log-filter",
		"",
		"zapfilter rules to scope verbose logging")

	// add commands here
	rootCmd.AddCommand(scoreCmd.NewScoreCmd())
	rootCmd.AddCommand(exportCmd.NewExportCmd())
	rootCmd.AddCommand(checkCmd.NewCheckCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".sailscore" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sailscore")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --input-dir to SAILSCORE_INPUT_DIR
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set
		// and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not set flag %s: %v", f.Name, err)
			}
		}
	})
}
