package identity

import (
	"testing"
)

func TestPBKDF2PasswordHasher_HashAndCompare(t *testing.T) {
	hasher := NewPBKDF2PasswordHasher()

	hash, salt, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "" || salt == "" {
		t.Fatal("Expected non-empty hash and salt")
	}

	if !hasher.Compare(hash, salt, "correct horse battery staple") {
		t.Error("Expected matching password to compare true")
	}
	if hasher.Compare(hash, salt, "wrong password") {
		t.Error("Expected non-matching password to compare false")
	}
}

func TestPBKDF2PasswordHasher_FreshSaltPerHash(t *testing.T) {
	hasher := NewPBKDF2PasswordHasher()

	hash1, salt1, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	hash2, salt2, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if salt1 == salt2 {
		t.Error("Expected a fresh salt for each hash")
	}
	if hash1 == hash2 {
		t.Error("Expected different hashes for different salts")
	}
}

func TestPBKDF2PasswordHasher_InvalidEncoding(t *testing.T) {
	hasher := NewPBKDF2PasswordHasher()

	if hasher.Compare("not base64!!", "also not base64!!", "password") {
		t.Error("Expected compare against malformed values to be false")
	}
}
