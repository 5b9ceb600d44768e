// auth_test.go — Unit tests for API key hashing.
package middleware

import (
	"testing"
)

func TestHashAPIKey(t *testing.T) {
	key := "pd_test_key_12345"

	hash1 := HashAPIKey(key)
	hash2 := HashAPIKey(key)

	// Hashing must be deterministic — it's a lookup key.
	if hash1 != hash2 {
		t.Errorf("same input produced different hashes: %q vs %q", hash1, hash2)
	}

	// SHA-256 hex is 64 characters.
	if len(hash1) != 64 {
		t.Errorf("hash length = %d, want 64", len(hash1))
	}

	// Different keys must not collide on trivial inputs.
	if HashAPIKey("other_key") == hash1 {
		t.Error("different keys produced the same hash")
	}

	// The raw key must never appear in the hash.
	if hash1 == key {
		t.Error("hash equals the raw key")
	}
}
