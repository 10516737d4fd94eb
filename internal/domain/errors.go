package domain

import "errors"

var (
	// ErrJobNotFound signals a missing job posting.
	ErrJobNotFound = errors.New("job not found")
	// ErrResumeNotFound signals a missing resume.
	ErrResumeNotFound = errors.New("resume not found")
	// ErrAliasTaken signals a duplicate resume alias for the same owner.
	ErrAliasTaken = errors.New("resume alias already taken")
	// ErrInvalidInput signals missing or malformed caller input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrQueryTooShort signals a search query below the minimum length.
	ErrQueryTooShort = errors.New("search query too short")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
