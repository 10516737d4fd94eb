package resume

import (
	"fmt"
	"time"
)

// Resume pairs a stored resume body with the job description it was written for.
type Resume struct {
	id         string
	owner      string
	jdText     string
	resumeText string
	alias      string
	createdAt  time.Time
}

// New validates and creates a Resume. Alias is optional.
func New(id, owner, jdText, resumeText, alias string, createdAt time.Time) (Resume, error) {
	if id == "" {
		return Resume{}, fmt.Errorf("resume ID is required")
	}
	if owner == "" {
		return Resume{}, fmt.Errorf("owner is required")
	}
	if jdText == "" {
		return Resume{}, fmt.Errorf("job description text is required")
	}
	if resumeText == "" {
		return Resume{}, fmt.Errorf("resume text is required")
	}

	return Resume{
		id:         id,
		owner:      owner,
		jdText:     jdText,
		resumeText: resumeText,
		alias:      alias,
		createdAt:  createdAt,
	}, nil
}

// Reconstruct creates a Resume without validation (storage hydration).
func Reconstruct(id, owner, jdText, resumeText, alias string, createdAt time.Time) Resume {
	return Resume{
		id:         id,
		owner:      owner,
		jdText:     jdText,
		resumeText: resumeText,
		alias:      alias,
		createdAt:  createdAt,
	}
}

// ID returns the resume identifier.
func (r *Resume) ID() string { return r.id }

// Owner returns the owning user identifier.
func (r *Resume) Owner() string { return r.owner }

// JDText returns the paired job description text (the searchable field).
func (r *Resume) JDText() string { return r.jdText }

// ResumeText returns the resume body text.
func (r *Resume) ResumeText() string { return r.resumeText }

// Alias returns the optional human-readable alias.
func (r *Resume) Alias() string { return r.alias }

// CreatedAt returns the creation timestamp.
func (r *Resume) CreatedAt() time.Time { return r.createdAt }
