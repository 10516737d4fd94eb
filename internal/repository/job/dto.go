package job

import (
	"fmt"
	"strconv"
	"time"

	domjob "github.com/jobjedi/jobjedi/internal/domain/job"
)

// jobToHash converts a domain Job to a map for HSET.
func jobToHash(j domjob.Job) map[string]string {
	return map[string]string{
		"owner":       j.Owner(),
		"url":         j.URL(),
		"company":     j.Company(),
		"position":    j.Position(),
		"description": j.Description(),
		"created_at":  strconv.FormatInt(j.CreatedAt().Unix(), 10),
	}
}

// jobFromHash hydrates a domain Job from an HGETALL result map.
func jobFromHash(m map[string]string) (domjob.Job, error) {
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domjob.Job{}, fmt.Errorf("invalid created_at: %w", err)
	}

	return domjob.Reconstruct(
		m["owner"],
		m["url"],
		m["company"],
		m["position"],
		m["description"],
		time.Unix(createdAt, 0).UTC(),
	), nil
}
