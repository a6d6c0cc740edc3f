package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
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

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ResultFingerprint identifies one analysis output for determinism checks
type ResultFingerprint Hash

// NewResultFingerprint hashes a serialized analysis result
func NewResultFingerprint(data []byte) ResultFingerprint {
	return ResultFingerprint(NewHash(data))
}

func (f ResultFingerprint) String() string { return Hash(f).String() }
