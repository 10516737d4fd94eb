package similarity

// Result is a single lexical similarity hit.
type Result struct {
	id            string
	owner         string
	alias         string
	jdExcerpt     string
	resumeExcerpt string
	score         float64
}

// New creates a similarity result.
func New(id, owner, alias, jdExcerpt, resumeExcerpt string, score float64) Result {
	return Result{
		id:            id,
		owner:         owner,
		alias:         alias,
		jdExcerpt:     jdExcerpt,
		resumeExcerpt: resumeExcerpt,
		score:         score,
	}
}

// ID returns the matched resume identifier.
func (r *Result) ID() string { return r.id }

// Owner returns the owning user identifier.
func (r *Result) Owner() string { return r.owner }

// Alias returns the optional resume alias.
func (r *Result) Alias() string { return r.alias }

// JDExcerpt returns a bounded excerpt of the job description text.
func (r *Result) JDExcerpt() string { return r.jdExcerpt }

// ResumeExcerpt returns a bounded excerpt of the resume body text.
func (r *Result) ResumeExcerpt() string { return r.resumeExcerpt }

// Score returns the normalized similarity score in [0,1].
func (r *Result) Score() float64 { return r.score }
