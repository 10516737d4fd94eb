package resume

import (
	"fmt"
	"strconv"
	"time"

	domres "github.com/jobjedi/jobjedi/internal/domain/resume"
)

// resumeToHash converts a domain Resume to a map for HSET.
func resumeToHash(r domres.Resume) map[string]string {
	return map[string]string{
		"id":          r.ID(),
		"owner":       r.Owner(),
		"jd_text":     r.JDText(),
		"resume_text": r.ResumeText(),
		"alias":       r.Alias(),
		"created_at":  strconv.FormatInt(r.CreatedAt().Unix(), 10),
	}
}

// resumeFromHash hydrates a domain Resume from an HGETALL result map.
func resumeFromHash(m map[string]string) (domres.Resume, error) {
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domres.Resume{}, fmt.Errorf("invalid created_at: %w", err)
	}

	return domres.Reconstruct(
		m["id"],
		m["owner"],
		m["jd_text"],
		m["resume_text"],
		m["alias"],
		time.Unix(createdAt, 0).UTC(),
	), nil
}
