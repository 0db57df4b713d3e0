package util

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// HashKey returns a filesystem-safe identifier for an arbitrary key.
func HashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashBucket maps s onto [0, n) using the leading bytes of its SHA-256 digest.
// The result is stable across processes and restarts.
func HashBucket(s string, n uint32) uint32 {
	if n == 0 {
		return 0
	}
	sum := sha256.Sum256([]byte(s))
	return binary.BigEndian.Uint32(sum[:4]) % n
}
