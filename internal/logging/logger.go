// Package logging is the structured logging surface of the passwdm shell.
// The database core never logs; only the shell reports lifecycle events
// such as a database being opened or a save failing.
package logging

import "context"

// Logger writes leveled records with key/value attributes:
//
//	log.Warn(ctx, "command failed", "op", "open", "kind", "incorrect passphrase")
//
// Passphrases and key material must never appear in msg or args.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With derives a logger that stamps every record with args, e.g. the
	// shell session id.
	With(args ...any) Logger
}
