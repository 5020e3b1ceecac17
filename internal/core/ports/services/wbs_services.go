package services

import (
	"context"

	"github.com/pbk-app/project_bookkeeping_app/internal/models"
)

// WbsSvcFacade defines the operations on a project's work-breakdown structure.
type WbsSvcFacade interface {
	// Bootstrap ensures the project's WBS document exists; idempotent.
	Bootstrap(ctx context.Context, projectID string) error

	// Add puts a job into the project scope. Adding a job that is already
	// in scope fails with apperrors.ErrDuplicate.
	Add(ctx context.Context, projectID, job string) error

	// Remove takes a job out of the project scope. Removing a job that is
	// not in scope fails with apperrors.ErrNotFound.
	Remove(ctx context.Context, projectID, job string) error

	// Exists reports whether the job is currently in scope.
	Exists(ctx context.Context, projectID, job string) (bool, error)

	// List returns all jobs in scope, in insertion order.
	List(ctx context.Context, projectID string) ([]models.Job, error)
}
