// Package cryptox holds the cryptographic primitives behind a passwdm
// database: passphrase key derivation and AES-256-CBC over whole blocks.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passwdm/internal/common"
)

const (
	// KeySize is the length of a derived key (AES-256).
	KeySize = sha256.Size

	// IVSize is the length of a CBC initialization vector.
	IVSize = aes.BlockSize
)

var (
	ErrKeySetup  = errors.New("cipher key setup failed")
	ErrInvalidIV = errors.New("invalid initialization vector")
	ErrBlockSize = errors.New("input is not a multiple of the block size")
)

// DeriveKey turns a passphrase into a KeySize key with SHA-256.
//
// The result is deterministic. The caller owns passphrase and is expected to
// wipe it as soon as this returns.
func DeriveKey(passphrase []byte) [KeySize]byte {
	return sha256.Sum256(passphrase)
}

// NewIV returns a fresh random initialization vector.
func NewIV() ([]byte, error) {
	return common.RandomBytes(IVSize)
}

// EncryptCBC encrypts plaintext with AES in CBC mode.
//
// The key must be KeySize bytes, the iv IVSize bytes and the plaintext a
// multiple of the AES block size; no padding is applied. The iv is not
// modified.
func EncryptCBC(key, iv, plaintext []byte) ([]byte, error) {
	block, err := newBlock(key, iv, plaintext)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	return ciphertext, nil
}

// DecryptCBC is the inverse of EncryptCBC. It never fails on the content of
// ciphertext: a wrong key yields garbage plaintext, not an error.
func DecryptCBC(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := newBlock(key, iv, ciphertext)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return plaintext, nil
}

func newBlock(key, iv, data []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key is %d bytes, want %d", ErrKeySetup, len(key), KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetup, err)
	}

	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidIV, len(iv), block.BlockSize())
	}

	if len(data)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlockSize, len(data))
	}

	return block, nil
}
