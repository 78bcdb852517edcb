package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a hex-encoded SHA-256 digest
type Hash string

// Digest returns the raw SHA-256 digest of data
func Digest(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := Digest(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex characters, enough to compare two outputs by eye
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// Fingerprint identifies a generated password without revealing it.
// Two runs with the same input and length must produce the same fingerprint.
func Fingerprint(password string) Hash {
	return NewHash([]byte(password))
}
