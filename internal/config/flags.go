package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/passwdm/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-d string   directory holding databases
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json)
//
// Only these flags are looked at; -c/-config is handled by parseJSON.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, "-d", "-l", "-f")

	fs := flag.NewFlagSet("passwdm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "directory holding databases")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
