package config

// this holds the resolved configuration values from CLI
var (
	InputDir    string // folder containing the club input files
	FleetFile   string // filename of the fleet definitions (yaml)
	SkipperFile string // filename of the skipper roster (csv)
	SeriesFile  string // filename of the series definitions (yaml)
	OutputDir   string // folder for generated output
	LogLevel    string // sets the log level (zap log level values)
	LogFilter   string // zapfilter rules to scope verbose logging
	Watch       bool   // re-run scoring when input files change
	ShowRaces   bool   // include per-race tables in score output
)
