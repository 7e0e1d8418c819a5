// Package internal holds unexported engine plumbing: the cryptographically
// random opaque token source behind email verification and password reset.
package internal

import (
	"crypto/rand"
	"encoding/base64"
)

// opaqueTokenBytes is the entropy per single-use token. 32 bytes encodes to
// a 43-character URL-safe string with negligible collision probability.
const opaqueTokenBytes = 32

// NewOpaqueToken returns an unguessable URL-safe token drawn from
// crypto/rand. It is a pure function of the random source; no state.
func NewOpaqueToken() (string, error) {
	raw := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
