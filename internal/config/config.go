package config

import (
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/passwdm/internal/common"
)

// Config holds runtime settings for the passwdm shell.
//
// Fields:
//   - DataDir: directory holding database files.
//   - LogLevel: debug, info, warn or error.
//   - LogFormat: text or json.
type Config struct {
	DataDir   string
	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = DefaultDataDir()
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// DefaultDataDir is $HOME/.passwdm, or .passwdm in the working directory
// when the home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return common.DefaultDirName
	}
	return filepath.Join(home, common.DefaultDirName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
