package models

import "time"

// Job is a single unit of work tracked in the project scope.
type Job struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created"`
}

// WbsDocument is the persisted work-breakdown structure of one project:
// the flat list of jobs currently in scope, in insertion order.
type WbsDocument struct {
	Jobs []Job `json:"jobs,omitempty"`
}
