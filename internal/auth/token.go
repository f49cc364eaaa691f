// Package auth implements access token issuance for the marketplace.
//
// Tokens are opaque bearer credentials: a user's token is generated exactly
// once at registration, stored on the user record, and validated by exact
// match against storage. There are no embedded claims, no signing, and no
// expiry; login always returns the same token.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the number of random bytes in an access token. 32 bytes gives
// 256 bits of entropy, encoded to 64 hex characters.
const tokenBytes = 32

// NewAccessToken generates a cryptographically random access token.
func NewAccessToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
