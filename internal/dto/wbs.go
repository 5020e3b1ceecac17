package dto

import (
	"time"

	"github.com/pbk-app/project_bookkeeping_app/internal/models"
)

// AddJobRequest puts a job into the project scope.
type AddJobRequest struct {
	Job string `json:"job" binding:"required"`
}

// JobResponse is one job currently in scope.
type JobResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created"`
}

// JobExistsResponse reports whether a job is in scope.
type JobExistsResponse struct {
	Job    string `json:"job"`
	Exists bool   `json:"exists"`
}

// ToJobResponses converts domain jobs to their response form.
func ToJobResponses(jobs []models.Job) []JobResponse {
	responses := make([]JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = JobResponse{ID: job.ID, CreatedAt: job.CreatedAt}
	}
	return responses
}
