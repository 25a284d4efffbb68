// Package id generates the opaque public identifiers used for loans,
// approvals, drafts, and customers.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a 32-character lowercase hex string backed by 16
// random bytes. Callers treat it as opaque; it carries no embedded
// timestamp or sequence.
func NewID32() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
