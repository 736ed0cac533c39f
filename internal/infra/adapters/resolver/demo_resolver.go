// File: internal/infra/adapters/resolver/demo_resolver.go
package resolver

import (
	"context"
	"strings"

	"school-platform/internal/domain"
	"school-platform/internal/domain/ports/adapter"
)

var _ adapter.ContentResolver = (*DemoResolver)(nil)

// DemoResolver serves a fixed subject/code table so the gateway can run
// without Postgres. Development only.
type DemoResolver struct {
	entries map[string]demoEntry
}

type demoEntry struct {
	subject string
	url     string
}

func NewDemoResolver() *DemoResolver {
	return &DemoResolver{
		entries: map[string]demoEntry{
			"CUP-BIO-001":  {subject: "biology", url: "https://content.example.org/biology/cell-structure"},
			"CUP-CHEM-001": {subject: "chemistry", url: "https://content.example.org/chemistry/periodic-table"},
			"CUP-PHYS-001": {subject: "physics", url: "https://content.example.org/physics/kinematics"},
		},
	}
}

func (r *DemoResolver) Resolve(ctx context.Context, subject, accessCode string) (string, error) {
	e, ok := r.entries[accessCode]
	if !ok || !strings.EqualFold(e.subject, subject) {
		return "", domain.ErrCodeNotFound
	}
	return e.url, nil
}
