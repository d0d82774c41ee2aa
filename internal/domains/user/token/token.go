// Package token derives single-use confirmation codes from account state.
//
// A code is a keyed hash over the account's identity, its activation
// flag and a rotating time window. Nothing is persisted: the code stops
// verifying as soon as the account activates (the flag is part of the
// MAC input) or the window rotates past the grace period. Within one
// window the same account always gets the same code, so resending a
// lost code is naturally idempotent.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// codeLength is the hex length of an issued code.
const codeLength = 32

// AccountSnapshot is the explicit value the code is derived from. It is
// deliberately a plain struct, not a live record, so the contract is
// testable without a database.
type AccountSnapshot struct {
	ID     uuid.UUID
	Active bool
}

// Generator issues and verifies confirmation codes.
type Generator struct {
	secret []byte
	window time.Duration

	// now is swappable in tests.
	now func() time.Time
}

func NewGenerator(secret string, window time.Duration) *Generator {
	return &Generator{
		secret: []byte(secret),
		window: window,
		now:    time.Now,
	}
}

// Issue returns the code for the account's current state and the
// current time window.
func (g *Generator) Issue(snapshot AccountSnapshot) string {
	return g.derive(snapshot, g.windowIndex())
}

// Verify recomputes the expected code from the account's current state
// and compares in constant time. Codes from the previous window are
// still accepted, so every code is valid for at least one full window
// and at most two.
func (g *Generator) Verify(snapshot AccountSnapshot, code string) bool {
	if len(code) != codeLength {
		return false
	}

	idx := g.windowIndex()
	for _, w := range []int64{idx, idx - 1} {
		expected := g.derive(snapshot, w)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return true
		}
	}
	return false
}

func (g *Generator) windowIndex() int64 {
	return g.now().Unix() / int64(g.window.Seconds())
}

func (g *Generator) derive(snapshot AccountSnapshot, window int64) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%s|%t|%d", snapshot.ID, snapshot.Active, window)
	return hex.EncodeToString(mac.Sum(nil))[:codeLength]
}
