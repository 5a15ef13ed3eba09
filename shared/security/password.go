// Package security hashes and verifies passwords and generates API keys.
package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hashing algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

const argon2idPrefix = "$argon2id$"

var (
	ErrHashing              = errors.New("failed to hash password")
	ErrVerification         = errors.New("failed to verify password")
	ErrUnsupportedAlgorithm = errors.New("unsupported password hashing algorithm")
)

// Hasher hashes new passwords with one algorithm and verifies hashes produced by any supported one.
type Hasher struct {
	algorithm string
	argon     argon2.Config
}

// NewHasher creates a Hasher for the given algorithm. An empty algorithm selects bcrypt.
func NewHasher(algorithm string) (*Hasher, error) {
	switch strings.ToLower(algorithm) {
	case "", AlgorithmBcrypt:
		return &Hasher{algorithm: AlgorithmBcrypt}, nil
	case AlgorithmArgon2id:
		return &Hasher{algorithm: AlgorithmArgon2id, argon: argon2.DefaultConfig()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
}

// Algorithm returns the algorithm used for new hashes.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Hash returns a salted one-way hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == AlgorithmArgon2id {
		encoded, err := h.argon.HashEncoded([]byte(password))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrHashing, err)
		}
		return string(encoded), nil
	}

	return HashPassword(password)
}

// Verify reports whether password matches hash.
func (h *Hasher) Verify(password, hash string) (bool, error) {
	return VerifyPassword(password, hash)
}

// HashPassword hashes the password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}

	return string(hash), nil
}

// VerifyPassword compares a password with a bcrypt or argon2id encoded hash.
// A malformed hash is an error; a mismatch is not.
func VerifyPassword(password, hash string) (bool, error) {
	if strings.HasPrefix(hash, argon2idPrefix) {
		ok, err := argon2.VerifyEncoded([]byte(password), []byte(hash))
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrVerification, err)
		}
		return ok, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrVerification, err)
	}
}
