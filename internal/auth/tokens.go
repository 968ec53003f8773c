package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecureToken returns a random hex string, used for temporary
// passwords when an account is created without one.
func GenerateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// The OS entropy source failing is unrecoverable here.
		panic("failed to generate secure token: " + err.Error())
	}
	return hex.EncodeToString(b)
}
