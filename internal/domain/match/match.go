package match

import (
	"fmt"
	"strings"
)

// idSeparator joins owner and job key inside a vector record identifier.
// The identifier alone determines both tenant and document without a side lookup.
const idSeparator = "|||"

// EncodeID builds a vector record identifier from an owner and a job key.
func EncodeID(owner, jobKey string) (string, error) {
	if owner == "" || jobKey == "" {
		return "", fmt.Errorf("owner and job key are required")
	}
	if strings.Contains(owner, idSeparator) {
		return "", fmt.Errorf("owner must not contain %q", idSeparator)
	}
	if strings.Contains(jobKey, idSeparator) {
		return "", fmt.Errorf("job key must not contain %q", idSeparator)
	}
	return owner + idSeparator + jobKey, nil
}

// ParseID splits a vector record identifier into owner and job key.
// A malformed identifier is a caller defect and is reported as an error.
func ParseID(id string) (owner, jobKey string, err error) {
	owner, jobKey, found := strings.Cut(id, idSeparator)
	if !found || owner == "" || jobKey == "" {
		return "", "", fmt.Errorf("malformed vector ID %q", id)
	}
	return owner, jobKey, nil
}

// Match is a single nearest-neighbor hit from the vector backend.
type Match struct {
	id       string
	owner    string
	jobKey   string
	score    float64
	metadata map[string]string
}

// New parses the record identifier and creates a Match.
func New(id string, score float64, metadata map[string]string) (Match, error) {
	owner, jobKey, err := ParseID(id)
	if err != nil {
		return Match{}, err
	}
	return Match{id: id, owner: owner, jobKey: jobKey, score: score, metadata: metadata}, nil
}

// ID returns the full vector record identifier.
func (m *Match) ID() string { return m.id }

// Owner returns the owner segment of the identifier.
func (m *Match) Owner() string { return m.owner }

// JobKey returns the document key segment of the identifier.
func (m *Match) JobKey() string { return m.jobKey }

// Score returns the backend similarity score.
func (m *Match) Score() float64 { return m.score }

// Metadata returns the stored metadata bag.
func (m *Match) Metadata() map[string]string { return m.metadata }

// BelongsTo reports whether the match's owner segment equals the requesting owner.
// Callers must check this before trusting a match, even with namespace isolation
// at the backend.
func (m *Match) BelongsTo(owner string) bool { return m.owner == owner }
