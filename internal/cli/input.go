package cli

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/passwdm/internal/common"
	"golang.org/x/term"
)

var (
	ErrEmptyPassphrase    = errors.New("passphrase cannot be empty")
	ErrPassphraseMismatch = errors.New("passphrases do not match")
)

// readPassword and lookupEnv are test seams.
var (
	readPassword = term.ReadPassword
	lookupEnv    = os.LookupEnv
)

// GetPassphrase returns the passphrase from PASSWDM_PASSPHRASE if it is set,
// otherwise prints prompt to w and reads from the terminal without echo.
//
// The returned slice should be wiped by the caller when no longer needed.
func GetPassphrase(w io.Writer, prompt string) ([]byte, error) {
	if v, ok := lookupEnv(common.PassphraseEnvVar); ok {
		return []byte(v), nil
	}

	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	return pw, nil
}

// GetNewPassphrase asks for a passphrase twice and returns it if both entries
// match and it is not empty. With PASSWDM_PASSPHRASE set no confirmation is
// asked.
func GetNewPassphrase(w io.Writer) ([]byte, error) {
	pass, err := GetPassphrase(w, "Enter passphrase: ")
	if err != nil {
		return nil, err
	}
	if len(pass) == 0 {
		return nil, ErrEmptyPassphrase
	}

	if _, ok := lookupEnv(common.PassphraseEnvVar); ok {
		return pass, nil
	}

	confirm, err := GetPassphrase(w, "Confirm passphrase: ")
	if err != nil {
		common.WipeByteArray(pass)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if subtle.ConstantTimeCompare(pass, confirm) != 1 {
		common.WipeByteArray(pass)
		return nil, ErrPassphraseMismatch
	}
	return pass, nil
}
