// Package config loads runtime configuration for the passwdm shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   directory holding databases (default $HOME/.passwdm)
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text, json
//
// # JSON schema
//
//	{
//	  "data_dir": "/home/alice/.passwdm",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
//
// The passphrase is never part of the configuration; see the cli package for
// the PASSWDM_PASSPHRASE environment variable.
package config
