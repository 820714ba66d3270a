package cryptox

import (
	"strings"
	"testing"
)

func TestHashPassword_NotPlaintext(t *testing.T) {
	h, err := HashPassword("secret", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h == "secret" {
		t.Fatal("hash equals the plaintext")
	}
	if !strings.HasPrefix(h, "$2") {
		t.Fatalf("unexpected hash format: %q", h)
	}
}

func TestComparePassword(t *testing.T) {
	h, err := HashPassword("secret", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !ComparePassword("secret", h) {
		t.Fatal("correct password did not match")
	}
	if ComparePassword("wrong", h) {
		t.Fatal("wrong password matched")
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, _ := HashPassword("secret", 4)
	h2, _ := HashPassword("secret", 4)
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestEqualTokens(t *testing.T) {
	if !EqualTokens("Bearer abc", "Bearer abc") {
		t.Fatal("equal tokens reported as different")
	}
	if EqualTokens("Bearer abc", "Bearer abd") {
		t.Fatal("different tokens reported as equal")
	}
	if EqualTokens("short", "longer-token") {
		t.Fatal("tokens of different length reported as equal")
	}
}
