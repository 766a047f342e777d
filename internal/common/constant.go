// Package common contains small helpers and constants shared across passwdm
// components.
package common

const (
	// AppName is used for the default data directory and log attributes.
	AppName = "passwdm"

	// DefaultDirName is the directory under the user's home that holds databases.
	DefaultDirName = ".passwdm"

	// PassphraseEnvVar, when set, supplies the passphrase instead of the
	// interactive prompt.
	PassphraseEnvVar = "PASSWDM_PASSPHRASE"
)
