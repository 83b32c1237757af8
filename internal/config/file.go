package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the keys accepted in .cfr.yaml
type fileConfig struct {
	BasePrefix    string `yaml:"base_prefix"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	LineMarker    string `yaml:"line_marker"`
	PayloadMarker string `yaml:"payload_marker"`
	Workers       int    `yaml:"workers"`
	StateDir      string `yaml:"state_dir"`
	RepoPath      string `yaml:"repo_path"`
	LogLevel      string `yaml:"log_level"`
	NoProgress    bool   `yaml:"no_progress"`
}

// LoadFile applies settings from a YAML file. An empty path means the default
// file, which is optional; an explicitly named file must exist.
func (c *Config) LoadFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.apply(fc)
	return nil
}

func (c *Config) apply(fc fileConfig) {
	if fc.BasePrefix != "" {
		c.BasePrefix = fc.BasePrefix
	}
	if fc.ScreenshotDir != "" {
		c.ScreenshotDir = fc.ScreenshotDir
	}
	if fc.LineMarker != "" {
		c.LineMarker = fc.LineMarker
	}
	if fc.PayloadMarker != "" {
		c.PayloadMarker = fc.PayloadMarker
	}
	if fc.Workers > 0 {
		c.Workers = fc.Workers
	}
	if fc.StateDir != "" {
		c.StateDir = fc.StateDir
	}
	if fc.RepoPath != "" {
		c.RepoPath = fc.RepoPath
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.NoProgress {
		c.NoProgress = true
	}
}
