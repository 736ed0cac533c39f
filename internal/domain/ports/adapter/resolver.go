package adapter

import "context"

// ContentResolver maps a subject plus access code to the locator of the
// underlying content. The ticket core stays independent of how entitlements
// are catalogued; implementations may hit Postgres or serve fixed demo data.
type ContentResolver interface {
	// Resolve returns the absolute URL of the protected content.
	// Fails with domain.ErrCodeNotFound when the pair maps to nothing.
	Resolve(ctx context.Context, subject, accessCode string) (string, error)
}
