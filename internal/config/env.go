package config

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envConfig is populated from CFR_* environment variables
type envConfig struct {
	BasePrefix    string `envconfig:"BASE_PREFIX"`
	ScreenshotDir string `envconfig:"SCREENSHOT_DIR"`
	LineMarker    string `envconfig:"LINE_MARKER"`
	PayloadMarker string `envconfig:"PAYLOAD_MARKER"`
	Workers       int    `envconfig:"WORKERS"`
	StateDir      string `envconfig:"STATE_DIR"`
	RepoPath      string `envconfig:"REPO_PATH"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
	NoProgress    bool   `envconfig:"NO_PROGRESS"`
}

// LoadEnv applies CFR_* environment variables, after loading a .env file from
// dir when one exists. Variables already set in the environment win over .env.
func (c *Config) LoadEnv(dir string) error {
	envPath := filepath.Join(dir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	var ec envConfig
	if err := envconfig.Process(EnvPrefix, &ec); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	c.apply(fileConfig(ec))
	return nil
}
