package adapter

// ClaimSigner turns an opaque claim payload into a tamper-evident string and
// back. It has no knowledge of tickets; callers serialize their own claims.
type ClaimSigner interface {
	// Encode produces a compact URL-safe token over the payload. It is
	// deterministic for identical input.
	Encode(payload []byte) string
	// Decode re-derives the integrity code and returns the payload on match.
	// Fails with domain.ErrMalformedToken when the token cannot be split into
	// payload and code, and domain.ErrTamperedToken on integrity mismatch.
	Decode(token string) ([]byte, error)
}
