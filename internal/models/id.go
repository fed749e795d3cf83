package models

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID mints a 24-character lowercase hex identifier. The mobile client
// predates this service and expects ObjectId-shaped ids on the wire, so ids
// stay 12 random bytes rendered as hex rather than UUIDs.
func NewID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
