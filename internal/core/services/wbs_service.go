package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pbk-app/project_bookkeeping_app/internal/apperrors"
	portsrepo "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/middleware"
	"github.com/pbk-app/project_bookkeeping_app/internal/models"
)

// wbsDocument is the per-project document holding the work-breakdown structure.
const wbsDocument = "wbs.json"

var ErrJobMissing = fmt.Errorf("%w: job id must not be empty", apperrors.ErrValidation)

// wbsService tracks which jobs are in the scope of a project.
type wbsService struct {
	store portsrepo.DocumentStore
}

// NewWbsService creates a new WbsService.
func NewWbsService(store portsrepo.DocumentStore) portssvc.WbsSvcFacade {
	return &wbsService{store: store}
}

// Ensure wbsService implements the portssvc.WbsSvcFacade interface
var _ portssvc.WbsSvcFacade = (*wbsService)(nil)

// Bootstrap ensures the WBS document exists; it never resets existing data.
func (s *wbsService) Bootstrap(ctx context.Context, projectID string) error {
	item, err := s.store.Acquire(ctx, projectID, wbsDocument)
	if err != nil {
		return err
	}
	defer item.Close()

	var doc models.WbsDocument
	exists, err := item.Load(&doc)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return item.Save(&models.WbsDocument{})
}

// Add puts a job into scope. The duplicate check and the insert happen under
// the same document acquisition, so concurrent adds of the same job cannot
// both succeed.
func (s *wbsService) Add(ctx context.Context, projectID, job string) error {
	if job == "" {
		return ErrJobMissing
	}

	item, err := s.store.Acquire(ctx, projectID, wbsDocument)
	if err != nil {
		return err
	}
	defer item.Close()

	var doc models.WbsDocument
	if _, err := item.Load(&doc); err != nil {
		return err
	}
	for _, j := range doc.Jobs {
		if j.ID == job {
			return fmt.Errorf("job %q is already in scope: %w", job, apperrors.ErrDuplicate)
		}
	}

	doc.Jobs = append(doc.Jobs, models.Job{ID: job, CreatedAt: time.Now().UTC()})
	if err := item.Save(&doc); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Job added to scope",
		slog.String("project_id", projectID), slog.String("job", job))
	return nil
}

// Remove takes a job out of scope.
func (s *wbsService) Remove(ctx context.Context, projectID, job string) error {
	if job == "" {
		return ErrJobMissing
	}

	item, err := s.store.Acquire(ctx, projectID, wbsDocument)
	if err != nil {
		return err
	}
	defer item.Close()

	var doc models.WbsDocument
	if _, err := item.Load(&doc); err != nil {
		return err
	}

	idx := -1
	for i, j := range doc.Jobs {
		if j.ID == job {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("job %q was not in scope: %w", job, apperrors.ErrNotFound)
	}

	doc.Jobs = append(doc.Jobs[:idx], doc.Jobs[idx+1:]...)
	if err := item.Save(&doc); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Job removed from scope",
		slog.String("project_id", projectID), slog.String("job", job))
	return nil
}

// Exists reports whether the job is in scope.
func (s *wbsService) Exists(ctx context.Context, projectID, job string) (bool, error) {
	if job == "" {
		return false, ErrJobMissing
	}

	item, err := s.store.Acquire(ctx, projectID, wbsDocument)
	if err != nil {
		return false, err
	}
	defer item.Close()

	var doc models.WbsDocument
	if _, err := item.Load(&doc); err != nil {
		return false, err
	}
	for _, j := range doc.Jobs {
		if j.ID == job {
			return true, nil
		}
	}
	return false, nil
}

// List returns all jobs in scope, in insertion order.
func (s *wbsService) List(ctx context.Context, projectID string) ([]models.Job, error) {
	item, err := s.store.Acquire(ctx, projectID, wbsDocument)
	if err != nil {
		return nil, err
	}
	defer item.Close()

	var doc models.WbsDocument
	if _, err := item.Load(&doc); err != nil {
		return nil, err
	}

	jobs := make([]models.Job, len(doc.Jobs))
	copy(jobs, doc.Jobs)
	return jobs, nil
}
