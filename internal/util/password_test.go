package util

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(digest, "$argon2id$") {
		t.Fatalf("expected argon2id digest, got %q", digest)
	}
	if !VerifyPassword("s3cret-pass", digest) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrong-pass", digest) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestHashPasswordDistinctDigests(t *testing.T) {
	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct digests for the same input")
	}
	if !VerifyPassword("same-input", first) || !VerifyPassword("same-input", second) {
		t.Fatalf("expected both digests to verify")
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	cases := []string{
		"",
		"not-a-digest",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$not!base64$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA",
	}
	for _, digest := range cases {
		if VerifyPassword("whatever", digest) {
			t.Fatalf("expected verification to fail for digest %q", digest)
		}
	}
}
