package chi

import (
	"context"

	domjob "github.com/jobjedi/jobjedi/internal/domain/job"
	domres "github.com/jobjedi/jobjedi/internal/domain/resume"
	"github.com/jobjedi/jobjedi/internal/domain/similarity"
	healthuc "github.com/jobjedi/jobjedi/internal/usecase/health"
	jobuc "github.com/jobjedi/jobjedi/internal/usecase/job"
	"github.com/jobjedi/jobjedi/internal/usecase/vector"
)

// fakeJobs implements jobService with overridable functions.
type fakeJobs struct {
	SaveFn           func(ctx context.Context, owner, url, company, position, description string) (domjob.Job, vector.Outcome, error)
	GetFn            func(ctx context.Context, owner, url string) (domjob.Job, error)
	ListFn           func(ctx context.Context, owner string) ([]domjob.Job, error)
	DeleteFn         func(ctx context.Context, owner, url string) (vector.Outcome, error)
	SearchTextFn     func(ctx context.Context, owner, query string) ([]domjob.Job, error)
	SemanticSearchFn func(ctx context.Context, owner, query string, topK int) ([]jobuc.SemanticHit, error)
}

func (f *fakeJobs) Save(ctx context.Context, owner, url, company, position, description string) (domjob.Job, vector.Outcome, error) {
	if f.SaveFn != nil {
		return f.SaveFn(ctx, owner, url, company, position, description)
	}
	return domjob.Job{}, vector.Outcome{Success: true}, nil
}

func (f *fakeJobs) Get(ctx context.Context, owner, url string) (domjob.Job, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, owner, url)
	}
	return domjob.Job{}, nil
}

func (f *fakeJobs) List(ctx context.Context, owner string) ([]domjob.Job, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, owner)
	}
	return nil, nil
}

func (f *fakeJobs) Delete(ctx context.Context, owner, url string) (vector.Outcome, error) {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, owner, url)
	}
	return vector.Outcome{Success: true}, nil
}

func (f *fakeJobs) SearchText(ctx context.Context, owner, query string) ([]domjob.Job, error) {
	if f.SearchTextFn != nil {
		return f.SearchTextFn(ctx, owner, query)
	}
	return nil, nil
}

func (f *fakeJobs) SemanticSearch(ctx context.Context, owner, query string, topK int) ([]jobuc.SemanticHit, error) {
	if f.SemanticSearchFn != nil {
		return f.SemanticSearchFn(ctx, owner, query, topK)
	}
	return nil, nil
}

// fakeResumes implements resumeService with overridable functions.
type fakeResumes struct {
	CreateFn     func(ctx context.Context, owner, jdText, resumeText, alias string) (domres.Resume, error)
	GetFn        func(ctx context.Context, owner, id string) (domres.Resume, error)
	GetByAliasFn func(ctx context.Context, owner, alias string) (domres.Resume, error)
	ListFn       func(ctx context.Context, owner string) ([]domres.Resume, error)
	DeleteFn     func(ctx context.Context, owner, id string) error
	MatchFn      func(ctx context.Context, owner, query string, limit int) ([]similarity.Result, error)
}

func (f *fakeResumes) Create(ctx context.Context, owner, jdText, resumeText, alias string) (domres.Resume, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, owner, jdText, resumeText, alias)
	}
	return domres.Resume{}, nil
}

func (f *fakeResumes) Get(ctx context.Context, owner, id string) (domres.Resume, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, owner, id)
	}
	return domres.Resume{}, nil
}

func (f *fakeResumes) GetByAlias(ctx context.Context, owner, alias string) (domres.Resume, error) {
	if f.GetByAliasFn != nil {
		return f.GetByAliasFn(ctx, owner, alias)
	}
	return domres.Resume{}, nil
}

func (f *fakeResumes) List(ctx context.Context, owner string) ([]domres.Resume, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, owner)
	}
	return nil, nil
}

func (f *fakeResumes) Delete(ctx context.Context, owner, id string) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, owner, id)
	}
	return nil
}

func (f *fakeResumes) Match(ctx context.Context, owner, query string, limit int) ([]similarity.Result, error) {
	if f.MatchFn != nil {
		return f.MatchFn(ctx, owner, query, limit)
	}
	return nil, nil
}

// fakeHealth implements healthService.
type fakeHealth struct {
	report healthuc.Report
}

func (f *fakeHealth) Check(ctx context.Context) healthuc.Report {
	return f.report
}
