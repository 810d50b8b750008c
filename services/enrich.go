package services

import (
	"context"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/diogo-costa-silva/portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// RepoFetcher fetches repository stats. *GithubClient is the production
// implementation.
type RepoFetcher interface {
	FetchRepo(ctx context.Context, ref RepoRef) (RepoStats, error)
}

// Enricher overlays live repository stats on a project list.
type Enricher struct {
	fetcher RepoFetcher
	limit   int
	logger  zerolog.Logger
}

// NewEnricher returns an enricher issuing at most limit concurrent requests.
// A limit of 0 or less leaves the fan-out unbounded.
func NewEnricher(fetcher RepoFetcher, limit int) *Enricher {
	return &Enricher{
		fetcher: fetcher,
		limit:   limit,
		logger:  log.With().Str("component", "enricher").Logger(),
	}
}

// IsCandidate reports whether a project should be enriched.
func IsCandidate(p models.Project) bool {
	if !p.IsReal {
		return false
	}
	_, ok := ParseGithubURL(p.Github)
	return ok
}

// Enrich returns a copy of projects in input order where every candidate
// carries either its stats or a failed marker. Individual request failures
// never abort the batch; the only error returned is the context's.
func (e *Enricher) Enrich(ctx context.Context, projects []models.Project) ([]models.Project, error) {
	out := models.CloneProjects(projects)

	var g errgroup.Group
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i := range out {
		ref, ok := ParseGithubURL(out[i].Github)
		if !out[i].IsReal || !ok {
			continue
		}

		// Each goroutine owns out[i]; no two write the same element.
		p := &out[i]
		g.Go(func() error {
			stats, err := e.fetcher.FetchRepo(ctx, ref)
			e.apply(p, ref, stats, err)
			return nil
		})
	}

	g.Wait()

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func (e *Enricher) apply(p *models.Project, ref RepoRef, stats RepoStats, err error) {
	if err == nil {
		success := true
		stars, watchers, forks := stats.Stars, stats.Watchers, stats.Forks
		p.Stars = &stars
		p.Watchers = &watchers
		p.Forks = &forks
		p.LastCommitDate = stats.PushedAt
		p.GithubDataSuccess = &success
		return
	}

	failed := false
	p.GithubDataSuccess = &failed
	p.Stars, p.Watchers, p.Forks, p.LastCommitDate = nil, nil, nil, nil

	switch {
	case errs.IsRateLimitError(err):
		p.GithubRateLimited = true
		e.logger.Warn().Str("repo", ref.String()).Msg("GitHub API rate limit reached")
	case errs.IsRepositoryNotFoundError(err):
		e.logger.Debug().Str("repo", ref.String()).Msg("repository not found or private")
	default:
		e.logger.Debug().Err(err).Str("repo", ref.String()).Msg("repository fetch failed")
	}
}
