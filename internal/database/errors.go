package database

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a database failure so callers can pick a precise message.
type Kind int

const (
	KindUnknown Kind = iota
	// KindSystem wraps the platform error of a failing system call.
	KindSystem
	// KindIO is a short read or write against the fixed-size envelope.
	KindIO
	// KindKeySetup means the cipher key could not be installed.
	KindKeySetup
	KindEncrypt
	KindDecrypt
	// KindIncorrectPassphrase is a signature mismatch after decryption. A
	// corrupted file is reported the same way.
	KindIncorrectPassphrase
	KindAlreadyExists
	// KindOutOfMemory completes the taxonomy; the Go runtime aborts on
	// allocation failure so nothing in this package returns it.
	KindOutOfMemory
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown",
	KindSystem:              "system",
	KindIO:                  "io",
	KindKeySetup:            "key setup",
	KindEncrypt:             "encrypt",
	KindDecrypt:             "decrypt",
	KindIncorrectPassphrase: "incorrect passphrase",
	KindAlreadyExists:       "already exists",
	KindOutOfMemory:         "out of memory",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	ErrIncorrectPassphrase = errors.New("incorrect passphrase")
	ErrAlreadyExists       = errors.New("database already exists")
	ErrTruncated           = errors.New("database file is truncated")
	ErrShortWrite          = errors.New("short write")
	ErrHeaderSize          = errors.New("invalid header size")
	ErrClosed              = errors.New("database is closed")
	ErrOutOfMemory         = errors.New("out of memory")
)

// kindSentinels lets errors.Is match an *Error against the sentinel of its kind.
var kindSentinels = map[Kind]error{
	KindIncorrectPassphrase: ErrIncorrectPassphrase,
	KindAlreadyExists:       ErrAlreadyExists,
	KindOutOfMemory:         ErrOutOfMemory,
}

// Error is returned by every failing database operation.
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

func newError(op, path string, kind Kind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// KindOf returns the Kind of err, or KindUnknown if err does not come from
// this package. A nil error has KindUnknown too.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Describe renders err as a short message for the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Kind {
	case KindSystem:
		var pe *fs.PathError
		if errors.As(e.Err, &pe) {
			return pe.Err.Error()
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return "system error"
	case KindIO:
		return "I/O error: the database file is truncated or could not be fully written"
	case KindKeySetup:
		return "could not set up the encryption key"
	case KindEncrypt:
		return "encryption failed"
	case KindDecrypt:
		return "decryption failed"
	case KindIncorrectPassphrase:
		return "incorrect passphrase"
	case KindAlreadyExists:
		return "a database with that name already exists"
	case KindOutOfMemory:
		return "out of memory"
	default:
		return e.Error()
	}
}
