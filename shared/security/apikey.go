package security

import (
	"crypto/rand"
	"encoding/hex"
)

// APIKeyBytes is the amount of entropy in an API key (256 bits).
const APIKeyBytes = 32

// GenerateAPIKey returns a random hex encoded API key.
func GenerateAPIKey() (string, error) {
	bytes := make([]byte, APIKeyBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
