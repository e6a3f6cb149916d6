package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// Constants for password hashing parameters
const (
	iterationCount = 10000 // PBKDF2 iterations
	keyLength      = 32    // 256 bit derived key
	saltLength     = 16    // 128 bit salt
)

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	// Hash hashes the given password with a fresh salt. Both return values
	// are base 64 encoded.
	Hash(password string) (hash, salt string, err error)
	// Compare reports whether the plain password matches the stored hash.
	Compare(hash, salt, password string) bool
}

// PBKDF2PasswordHasher implements PasswordHasher using PBKDF2-SHA256
type PBKDF2PasswordHasher struct{}

// NewPBKDF2PasswordHasher creates a new PBKDF2PasswordHasher instance
func NewPBKDF2PasswordHasher() *PBKDF2PasswordHasher {
	return &PBKDF2PasswordHasher{}
}

// Hash hashes the given password with a fresh random salt
func (h *PBKDF2PasswordHasher) Hash(password string) (string, string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", "", err
	}

	derived := pbkdf2.Key([]byte(password), salt, iterationCount, keyLength, sha256.New)

	return base64.StdEncoding.EncodeToString(derived), base64.StdEncoding.EncodeToString(salt), nil
}

// Compare reports whether the plain password matches the stored hash
func (h *PBKDF2PasswordHasher) Compare(hash, salt, password string) bool {
	storedHash, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false
	}
	storedSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}

	derived := pbkdf2.Key([]byte(password), storedSalt, iterationCount, keyLength, sha256.New)

	return subtle.ConstantTimeCompare(storedHash, derived) == 1
}
