package config

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	// Archive layout
	BasePrefix    string
	ScreenshotDir string

	// Failure stats markers in stderr
	LineMarker    string
	PayloadMarker string

	// Pipeline settings
	Workers int

	// Triage state and remediation
	StateDir string
	RepoPath string

	// Output settings
	LogLevel   string
	NoProgress bool

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	Prefix     string
	Workers    int
	StateDir   string
	RepoPath   string
	LogLevel   string
	NoProgress bool
	NameFilter string
	FailedOnly bool
	Format     string
	Output     string
	TestName   string
	Preview    bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		BasePrefix:    DefaultBasePrefix,
		ScreenshotDir: DefaultScreenshotDir,
		LineMarker:    DefaultLineMarker,
		PayloadMarker: DefaultPayloadMarker,
		Workers:       DefaultWorkers,
		StateDir:      DefaultStateDir,
		RepoPath:      DefaultRepoPath,
		LogLevel:      DefaultLogLevel,
	}
}

// Load creates a config from defaults, the optional config file, the
// environment and finally the given flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	if err := cfg.LoadFile(flags.ConfigFile); err != nil {
		return nil, err
	}
	if err := cfg.LoadEnv("."); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)

	return cfg, nil
}

// ApplyFlags overrides settings with flags that were set on the command line
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.Prefix != "" {
		c.BasePrefix = flags.Prefix
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.StateDir != "" {
		c.StateDir = flags.StateDir
	}
	if flags.RepoPath != "" {
		c.RepoPath = flags.RepoPath
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.NoProgress {
		c.NoProgress = true
	}
}

// GetBasePrefix returns the base prefix with exactly one trailing slash
func (c *Config) GetBasePrefix() string {
	p := strings.TrimLeft(c.BasePrefix, "/")
	if p == "" {
		return ""
	}
	return strings.TrimRight(p, "/") + "/"
}

// GetScreenshotPrefix returns the full in-archive directory holding screenshots
func (c *Config) GetScreenshotPrefix() string {
	return c.GetBasePrefix() + strings.TrimRight(strings.TrimLeft(c.ScreenshotDir, "/"), "/") + "/"
}

// GetStatePath returns the triage state file for an archive hash.
// Resolves to an absolute path so every command reads the same file regardless of cwd.
func (c *Config) GetStatePath(archiveHash string) string {
	p := filepath.Join(c.StateDir, archiveHash+".json")
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetExportDir returns the directory screenshots are written to
func (c *Config) GetExportDir() string {
	if c.Flags.Output != "" {
		return c.Flags.Output
	}
	return DefaultExportDir
}

// GetWorkers returns the number of document decoders, at least one
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return 1
	}
	return c.Workers
}

// GetLogLevel parses the configured log level, falling back to info
func (c *Config) GetLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
