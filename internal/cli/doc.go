// Package cli provides the interactive passwdm shell.
//
// The shell keeps at most one database open. create and open replace the
// current database after saving it; close saves before closing; exit closes
// the current database the same way. Passphrases are read without echo, or
// taken from PASSWDM_PASSPHRASE when that variable is set.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
