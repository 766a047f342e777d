// Package database implements the passwdm container: a small file holding a
// header record encrypted with a key derived from the user's passphrase.
//
// # File format
//
//	offset  size  field
//	0       16    initialization vector (random per save)
//	16      16    AES-256-CBC ciphertext of the header
//
// The decrypted header is four little-endian uint32 values: the signature
// (Magic) and three reserved fields, all zero.
//
// # Lifecycle
//
//   - Create opens a new file exclusively; nothing is written until Save.
//   - Open reads and decrypts the header and checks the signature.
//   - Save writes IV and ciphertext at offset 0 with a fresh IV.
//   - Close releases the file and wipes key material. It never saves.
//
// Create and Open wipe the passphrase slice they are given on every path.
//
// # Errors
//
// Failures are returned as *Error carrying a Kind. Use KindOf or errors.Is
// with the exported sentinels to branch, and Describe to render a message.
// A wrong passphrase and a corrupted file cannot be told apart and are both
// reported as KindIncorrectPassphrase.
package database
