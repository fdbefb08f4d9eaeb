// Package storage is the blob-store boundary for uploaded files (resumes,
// business licenses). Callers only ever hold the opaque reference string a
// Save returns; file content never crosses into domain logic.
package storage

import (
	"context"
	"io"
)

// FileStore persists a blob and hands back a retrievable reference.
type FileStore interface {
	// Save stores the content of r under a generated key derived from name's
	// extension and returns the opaque reference.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// URL resolves a reference to something a client can fetch.
	URL(ctx context.Context, ref string) (string, error)
}
