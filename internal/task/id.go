package task

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"time"
)

const (
	minIDLength = 4
	maxIDLength = 10
	saltSize    = 16
)

// NewID returns the shortest free base36 ID for t, between minIDLength and maxIDLength
// characters. The digest covers the title, due date, creation time and a random salt, so two
// identical drafts still get different IDs. taken reports IDs already in use.
func NewID(t Task, taken func(string) bool) string {
	for {
		enc := encodeDigest(t)
		if len(enc) < maxIDLength {
			continue
		}
		for n := minIDLength; n <= maxIDLength; n++ {
			if id := enc[:n]; !taken(id) {
				return id
			}
		}
	}
}

func encodeDigest(t Task) string {
	salt := make([]byte, saltSize)
	_, _ = rand.Read(salt) // never fails since Go 1.24

	h := sha256.New()
	for _, part := range []string{t.Title, t.Due.Format(time.RFC3339Nano), t.CreatedAt.Format(time.RFC3339Nano)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write(salt)
	return new(big.Int).SetBytes(h.Sum(nil)).Text(36) //nolint:mnd // base36
}
