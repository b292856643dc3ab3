// Package digest produces cheap content fingerprints for stored snapshot
// bytes. The hash is not used for anything cryptographic: it exists so that
// two snapshots can be compared, or a round-trip verified, without diffing
// entire blobs.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
)

// Hash returns a hex-encoded sha1 digest of everything read from r.
func Hash(r io.Reader) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes is a convenience wrapper around Hash for in-memory snapshots.
func HashBytes(b []byte) string {
	s := sha1.Sum(b)
	return hex.EncodeToString(s[:])
}
