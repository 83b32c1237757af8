package config

const (
	// DefaultBasePrefix is the fixed prefix Jenkins puts in front of every archived artifact
	DefaultBasePrefix = "archive/"
	// DefaultScreenshotDir is where screenshots live, relative to the base prefix
	DefaultScreenshotDir = "test-results/screenshots/"
	// DefaultLineMarker marks a stderr line carrying a structured failure report
	DefaultLineMarker = "Autoconsent test failed on"
	// DefaultPayloadMarker precedes the JSON payload on a failure report line
	DefaultPayloadMarker = "failure stats: "
	// DefaultWorkers is the default number of report documents decoded concurrently
	DefaultWorkers = 4
	// DefaultStateDir is where triage decisions are kept between runs
	DefaultStateDir = ".cfr"
	// DefaultRepoPath is the git repository used to preview revert targets
	DefaultRepoPath = "."
	// DefaultExportDir receives screenshots exported from the viewer or the screenshots command
	DefaultExportDir = "screenshots"
	// DefaultLogLevel is the default logrus level
	DefaultLogLevel = "info"
	// DefaultConfigFile is read when present and no --config flag is given
	DefaultConfigFile = ".cfr.yaml"
	// EnvPrefix is the prefix of environment overrides (CFR_WORKERS, ...)
	EnvPrefix = "cfr"
)
