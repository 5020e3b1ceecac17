package repositories

import "context"

// DocumentHandle is an exclusively-held handle to one structured document.
// It stays valid until Close; Close releases the document unconditionally
// and must be called on every exit path, typically via defer.
type DocumentHandle interface {
	// Load decodes the document into v. It reports whether the document
	// existed on storage; when it did not, v is left untouched so the
	// caller starts from the zero-value schema.
	Load(v any) (bool, error)

	// Save atomically replaces the document content with the encoding of v.
	Save(v any) error

	// Close releases the document. It is safe to call more than once.
	Close() error
}

// DocumentStore is the gateway to per-project structured documents. Acquire
// blocks until the named document is free (or ctx is done) and guarantees
// single-writer-at-a-time access until the handle is closed.
type DocumentStore interface {
	Acquire(ctx context.Context, projectID, name string) (DocumentHandle, error)
}
