package job

import (
	"fmt"
	"time"
)

// MaxDescriptionSize is the maximum job description size in bytes.
const MaxDescriptionSize = 163840 // 160KB

// Job is a saved job posting (immutable value object).
// The posting URL is the document key inside an owner's partition.
type Job struct {
	owner       string
	url         string
	company     string
	position    string
	description string
	createdAt   time.Time
}

// New validates and creates a Job.
func New(owner, url, company, position, description string, createdAt time.Time) (Job, error) {
	if owner == "" {
		return Job{}, fmt.Errorf("owner is required")
	}
	if url == "" {
		return Job{}, fmt.Errorf("job URL is required")
	}
	if company == "" {
		return Job{}, fmt.Errorf("company name is required")
	}
	if position == "" {
		return Job{}, fmt.Errorf("position is required")
	}
	if description == "" {
		return Job{}, fmt.Errorf("job description is required")
	}
	if len(description) > MaxDescriptionSize {
		return Job{}, fmt.Errorf("job description too large (max %d bytes)", MaxDescriptionSize)
	}

	return Job{
		owner:       owner,
		url:         url,
		company:     company,
		position:    position,
		description: description,
		createdAt:   createdAt,
	}, nil
}

// Reconstruct creates a Job without validation (storage hydration).
func Reconstruct(owner, url, company, position, description string, createdAt time.Time) Job {
	return Job{
		owner:       owner,
		url:         url,
		company:     company,
		position:    position,
		description: description,
		createdAt:   createdAt,
	}
}

// Owner returns the owning user identifier.
func (j *Job) Owner() string { return j.owner }

// URL returns the posting URL (document key).
func (j *Job) URL() string { return j.url }

// Company returns the company name.
func (j *Job) Company() string { return j.company }

// Position returns the position title.
func (j *Job) Position() string { return j.position }

// Description returns the raw job description text.
func (j *Job) Description() string { return j.description }

// CreatedAt returns the creation timestamp.
func (j *Job) CreatedAt() time.Time { return j.createdAt }
