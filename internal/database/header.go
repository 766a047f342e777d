package database

import (
	"encoding/binary"
	"fmt"
)

const (
	// Magic is the header signature of a correctly decrypted database ("PWDM").
	Magic uint32 = 0x5057444D

	// HeaderSize is the encoded size of a Header.
	HeaderSize = 16
)

// Header is the fixed plaintext record stored encrypted in every database.
// It is encoded as four little-endian uint32 values: the signature followed
// by three reserved fields that are currently always zero.
type Header struct {
	Signature uint32
	Reserved  [3]uint32
}

// NewHeader returns a header for a freshly created database.
func NewHeader() Header {
	return Header{Signature: Magic}
}

// Valid reports whether the signature matches Magic.
func (h Header) Valid() bool {
	return h.Signature == Magic
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[0:], h.Signature)
	for i, r := range h.Reserved {
		binary.LittleEndian.PutUint32(b[4+4*i:], r)
	}
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Only the length is
// checked; a bad signature is still a well-formed header.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrHeaderSize, len(b), HeaderSize)
	}
	h.Signature = binary.LittleEndian.Uint32(b[0:])
	for i := range h.Reserved {
		h.Reserved[i] = binary.LittleEndian.Uint32(b[4+4*i:])
	}
	return nil
}
