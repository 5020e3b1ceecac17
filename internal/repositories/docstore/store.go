package docstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/pbk-app/project_bookkeeping_app/internal/apperrors"
	portsrepo "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/repositories"
)

// Store keeps one JSON document per (project, name) pair under a data root
// and hands out exclusively-locked handles to them. Locking is per document:
// two callers can work on different documents concurrently, but a document
// is only ever held by one caller at a time.
type Store struct {
	fs   afero.Fs
	root string

	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewStore creates a Store rooted at dir on the given filesystem.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{
		fs:    fs,
		root:  dir,
		locks: make(map[string]chan struct{}),
	}
}

// Acquire returns an exclusive handle to the named document of a project,
// blocking until the document is free or ctx is done. The returned handle
// must be closed by the caller; a deferred Close is the expected pattern.
func (s *Store) Acquire(ctx context.Context, projectID, name string) (portsrepo.DocumentHandle, error) {
	if err := validateSegment(projectID); err != nil {
		return nil, fmt.Errorf("invalid project id %q: %w", projectID, err)
	}
	if err := validateSegment(name); err != nil {
		return nil, fmt.Errorf("invalid document name %q: %w", name, err)
	}

	key := projectID + "/" + name
	lock := s.lock(key)

	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("acquiring document %s: %w", key, ctx.Err())
	}

	return &item{
		fs:   s.fs,
		path: filepath.Join(s.root, projectID, name),
		lock: lock,
	}, nil
}

// lock returns the mutex channel for a document key, creating it on first use.
func (s *Store) lock(key string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = make(chan struct{}, 1)
		s.locks[key] = lock
	}
	return lock
}

func validateSegment(segment string) error {
	if segment == "" {
		return apperrors.ErrValidation
	}
	if strings.ContainsAny(segment, `/\`) || segment == "." || segment == ".." {
		return apperrors.ErrValidation
	}
	return nil
}
