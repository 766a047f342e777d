package database

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/passwdm/internal/common"
	"github.com/dmitrijs2005/passwdm/internal/cryptox"
)

// FileSize is the size of a saved database: the IV followed by the
// encrypted header.
const FileSize = cryptox.IVSize + HeaderSize

// newIV is a test seam for IV generation.
var newIV = cryptox.NewIV

// Database is an open database. It exclusively owns the underlying file, the
// derived key and the decoded header until Close is called.
//
// A Database is not safe for concurrent use.
type Database struct {
	name   string
	file   *os.File
	key    [cryptox.KeySize]byte
	header *Header
}

// Create creates a new database at path and returns it open.
//
// The file must not exist yet. The header is kept in memory only; the file
// stays empty until Save is called. passphrase is wiped before Create
// returns, whatever the outcome.
func Create(path string, passphrase []byte) (*Database, error) {
	defer common.WipeByteArray(passphrase)
	const op = "create"

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, newError(op, path, KindAlreadyExists, err)
		}
		return nil, newError(op, path, KindSystem, err)
	}

	h := NewHeader()
	return &Database{
		name:   path,
		file:   f,
		key:    cryptox.DeriveKey(passphrase),
		header: &h,
	}, nil
}

// Open opens an existing database at path and decrypts its header with the
// key derived from passphrase.
//
// A short file yields KindIO. A header whose signature does not match after
// decryption yields KindIncorrectPassphrase. passphrase is wiped before Open
// returns, whatever the outcome.
func Open(path string, passphrase []byte) (db *Database, err error) {
	defer common.WipeByteArray(passphrase)
	const op = "open"

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, newError(op, path, KindSystem, err)
	}

	key := cryptox.DeriveKey(passphrase)
	defer func() {
		if err != nil {
			_ = f.Close()
			common.WipeByteArray(key[:])
		}
	}()

	iv := make([]byte, cryptox.IVSize)
	if err := readFull(f, iv); err != nil {
		return nil, newError(op, path, readKind(err), err)
	}

	ciphertext := make([]byte, HeaderSize)
	if err := readFull(f, ciphertext); err != nil {
		return nil, newError(op, path, readKind(err), err)
	}

	plaintext, err := cryptox.DecryptCBC(key[:], iv, ciphertext)
	if err != nil {
		return nil, newError(op, path, cipherKind(err, KindDecrypt), err)
	}
	defer common.WipeByteArray(plaintext)

	var h Header
	if err := h.UnmarshalBinary(plaintext); err != nil {
		return nil, newError(op, path, KindDecrypt, err)
	}

	if !h.Valid() {
		return nil, newError(op, path, KindIncorrectPassphrase, nil)
	}

	db = &Database{name: path, file: f, key: key, header: &h}
	common.WipeByteArray(key[:])

	return db, nil
}

// Save encrypts the header under a fresh random IV and writes IV then
// ciphertext at the start of the file. The file is neither truncated nor
// closed.
func (d *Database) Save() error {
	const op = "save"

	if !d.IsOpen() {
		return newError(op, d.Name(), KindSystem, ErrClosed)
	}

	if _, err := d.file.Seek(0, io.SeekStart); err != nil {
		return newError(op, d.name, KindSystem, err)
	}

	plaintext, err := d.header.MarshalBinary()
	if err != nil {
		return newError(op, d.name, KindEncrypt, err)
	}
	defer common.WipeByteArray(plaintext)

	iv, err := newIV()
	if err != nil {
		return newError(op, d.name, KindSystem, err)
	}

	ciphertext, err := cryptox.EncryptCBC(d.key[:], iv, plaintext)
	if err != nil {
		return newError(op, d.name, cipherKind(err, KindEncrypt), err)
	}

	if err := writeFull(d.file, iv); err != nil {
		return newError(op, d.name, writeKind(err), err)
	}

	if err := writeFull(d.file, ciphertext); err != nil {
		return newError(op, d.name, writeKind(err), err)
	}

	return nil
}

// Close releases the file and wipes the key and header. It does not save.
// Closing a nil or already closed Database does nothing.
func (d *Database) Close() {
	if !d.IsOpen() {
		return
	}

	_ = d.file.Close()
	d.file = nil

	common.WipeByteArray(d.key[:])
	if d.header != nil {
		*d.header = Header{}
		d.header = nil
	}
}

// IsOpen reports whether d holds an open file.
func (d *Database) IsOpen() bool {
	return d != nil && d.file != nil
}

// Name returns the path the database was created or opened with.
func (d *Database) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// Header returns a copy of the decoded header, or the zero Header once the
// database is closed.
func (d *Database) Header() Header {
	if d == nil || d.header == nil {
		return Header{}
	}
	return *d.header
}

func readFull(r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		return err
	}
	return nil
}

func readKind(err error) Kind {
	if errors.Is(err, ErrTruncated) {
		return KindIO
	}
	return KindSystem
}

func writeFull(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if errors.Is(err, io.ErrShortWrite) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrShortWrite, n, len(b))
	}
	return err
}

func writeKind(err error) Kind {
	if errors.Is(err, ErrShortWrite) {
		return KindIO
	}
	return KindSystem
}

func cipherKind(err error, fallback Kind) Kind {
	if errors.Is(err, cryptox.ErrKeySetup) {
		return KindKeySetup
	}
	return fallback
}
