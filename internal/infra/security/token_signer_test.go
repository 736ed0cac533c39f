//go:build !integration

package security

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"school-platform/internal/domain"
)

func TestTokenSigner_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewTokenSigner("test-secret")
	if err != nil {
		t.Fatalf("NewTokenSigner: %v", err)
	}

	payload := []byte(`{"sub":"viewer","url":"https://provider.example/bio"}`)
	tok := s.Encode(payload)

	if strings.Count(tok, ".") != 1 {
		t.Fatalf("expected a single delimiter in %q", tok)
	}
	got, err := s.Decode(tok)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %q want %q", got, payload)
	}
}

func TestTokenSigner_Deterministic(t *testing.T) {
	t.Parallel()

	s, _ := NewTokenSigner("test-secret")
	payload := []byte("same input")
	if s.Encode(payload) != s.Encode(payload) {
		t.Fatalf("expected deterministic encoding for identical input")
	}
}

func TestTokenSigner_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenSigner(""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestTokenSigner_Malformed(t *testing.T) {
	t.Parallel()

	s, _ := NewTokenSigner("test-secret")
	for _, tok := range []string{
		"",
		"justonepart",
		"a.b.c",
		".code-without-payload",
		"payload-without-code.",
		"!!!not-base64!!!.AAAA",
	} {
		if _, err := s.Decode(tok); !errors.Is(err, domain.ErrMalformedToken) {
			t.Fatalf("Decode(%q): expected ErrMalformedToken, got %v", tok, err)
		}
	}
}

func TestTokenSigner_WrongSecret(t *testing.T) {
	t.Parallel()

	a, _ := NewTokenSigner("secret-a")
	b, _ := NewTokenSigner("secret-b")
	tok := a.Encode([]byte("payload"))
	if _, err := b.Decode(tok); !errors.Is(err, domain.ErrTamperedToken) {
		t.Fatalf("expected ErrTamperedToken, got %v", err)
	}
}

// Flipping any single character of the encoded string must break either
// parsing or the integrity check; an unmodified copy still decodes.
func TestTokenSigner_TamperSensitivity(t *testing.T) {
	t.Parallel()

	s, _ := NewTokenSigner("test-secret")
	tok := s.Encode([]byte(`{"subject":"Biology","accessCode":"CUP-BIO-001"}`))

	for i := 0; i < len(tok); i++ {
		if tok[i] == '.' {
			continue
		}
		flipped := tok[:i] + flip(tok[i]) + tok[i+1:]
		_, err := s.Decode(flipped)
		if err == nil {
			t.Fatalf("Decode accepted token with byte %d flipped", i)
		}
		if !errors.Is(err, domain.ErrTamperedToken) && !errors.Is(err, domain.ErrMalformedToken) {
			t.Fatalf("byte %d: unexpected error %v", i, err)
		}
	}
	if _, err := s.Decode(tok); err != nil {
		t.Fatalf("unmodified token must still decode: %v", err)
	}
}

// flip substitutes a different character from the base64url alphabet.
func flip(c byte) string {
	if c == 'A' {
		return "B"
	}
	return "A"
}
