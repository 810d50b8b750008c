package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/diogo-costa-silva/portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSummaryLimit = 6

	// FullPageCacheKey keys the enriched catalog of the full page, stored
	// next to the summary snapshot under DefaultCacheKey.
	FullPageCacheKey = "github_projects_full_cache"
)

// PageContext selects how much of the catalog a page shows.
type PageContext int

const (
	// PageSummary shows the most recently pushed real projects.
	PageSummary PageContext = iota
	// PageFull shows the whole enriched catalog.
	PageFull
)

func (p PageContext) String() string {
	if p == PageFull {
		return "projects"
	}
	return "index"
}

// ParsePageContext maps a page name to its context.
func ParsePageContext(page string) (PageContext, error) {
	switch strings.ToLower(strings.TrimSpace(page)) {
	case "", "index", "home":
		return PageSummary, nil
	case "projects", "all", "full":
		return PageFull, nil
	default:
		return PageSummary, fmt.Errorf("unknown page %q", page)
	}
}

// attempt is one link of a fallback chain; ok=false hands over to the next.
type attempt func(ctx context.Context) (projects []models.Project, ok bool)

func firstOf(ctx context.Context, attempts ...attempt) []models.Project {
	for _, try := range attempts {
		if projects, ok := try(ctx); ok {
			return projects
		}
	}
	return nil
}

// Loader resolves the project list for a page.
type Loader struct {
	source       ProjectSource
	enricher     *Enricher
	cache        *Cache
	fullCache    *Cache
	summaryLimit int
	logger       zerolog.Logger
}

type LoaderOption func(*Loader)

// WithFullPageCache keeps the enriched full catalog in cache so the full
// page does not query GitHub on every load.
func WithFullPageCache(cache *Cache) LoaderOption {
	return func(l *Loader) { l.fullCache = cache }
}

func NewLoader(source ProjectSource, enricher *Enricher, cache *Cache, summaryLimit int, opts ...LoaderOption) *Loader {
	if summaryLimit <= 0 {
		summaryLimit = DefaultSummaryLimit
	}
	l := &Loader{
		source:       source,
		enricher:     enricher,
		cache:        cache,
		summaryLimit: summaryLimit,
		logger:       log.With().Str("component", "loader").Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadProjects never fails: each failing step degrades to a smaller but
// renderable list. When the source is down the cached lists are used
// before the embedded fallback.
func (l *Loader) LoadProjects(ctx context.Context, page PageContext) []models.Project {
	canonical, ok := l.fetchCanonical(ctx)

	if page == PageFull {
		if !ok {
			return firstOf(ctx, l.fromFullCache, l.inline(page))
		}
		return firstOf(ctx, l.overlayFullCache(canonical), l.enrichAll(canonical))
	}

	if !ok {
		return firstOf(ctx, l.fromCache, l.inline(page))
	}
	return firstOf(ctx,
		l.fromCache,
		l.rankByActivity(canonical),
		l.featured(canonical),
		l.head(canonical),
	)
}

// ClearCache drops the summary snapshot and the full-page catalog.
func (l *Loader) ClearCache() error {
	err := l.cache.Clear()
	if l.fullCache != nil {
		err = errors.Join(err, l.fullCache.Clear())
	}
	return err
}

// Refresh drops the cached lists and rebuilds the summary list.
func (l *Loader) Refresh(ctx context.Context) ([]models.Project, error) {
	if err := l.ClearCache(); err != nil {
		return nil, err
	}
	return l.LoadProjects(ctx, PageSummary), nil
}

func (l *Loader) fetchCanonical(ctx context.Context) ([]models.Project, bool) {
	projects, err := l.source.FetchProjects(ctx)
	if err != nil {
		l.logger.Error().Err(err).Str("reason", sourceFailureReason(err)).Msg("error loading projects, using fallback")
		return nil, false
	}

	projects = l.sanitize(projects)
	if len(projects) == 0 {
		l.logger.Error().Msg("project list has no renderable projects, using fallback")
		return nil, false
	}
	return projects, true
}

// sanitize drops records missing required fields and repeated identifiers.
// Stats shipped with the list are discarded: only enrichment sets them.
func (l *Loader) sanitize(projects []models.Project) []models.Project {
	seen := make(map[string]bool, len(projects))
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if field := p.Validate(); field != "" {
			l.logger.Warn().Str("projectID", p.ID).Str("field", field).Msg("dropping invalid project")
			continue
		}
		if seen[p.ID] {
			l.logger.Warn().Str("projectID", p.ID).Msg("dropping duplicate project")
			continue
		}
		seen[p.ID] = true
		p.ClearGithubData()
		out = append(out, p)
	}
	return out
}

// inline is the last link of every chain and always succeeds.
func (l *Loader) inline(page PageContext) attempt {
	return func(context.Context) ([]models.Project, bool) {
		projects := FallbackProjects()
		if page == PageSummary && len(projects) > l.summaryLimit {
			projects = projects[:l.summaryLimit]
		}
		return projects, true
	}
}

func (l *Loader) enrichAll(projects []models.Project) attempt {
	return func(ctx context.Context) ([]models.Project, bool) {
		enriched, err := l.enricher.Enrich(ctx, projects)
		if err != nil {
			l.logger.Error().Err(err).Msg("enrichment interrupted, showing projects without GitHub data")
			return models.CloneProjects(projects), true
		}
		if l.fullCache != nil {
			l.fullCache.Put(enriched)
		}
		return enriched, true
	}
}

func (l *Loader) fromFullCache(context.Context) ([]models.Project, bool) {
	if l.fullCache == nil {
		return nil, false
	}
	return l.fullCache.Get()
}

// overlayFullCache copies the cached enrichment onto the current catalog.
// It misses when the set of IDs or any repository link changed since the
// cache was written.
func (l *Loader) overlayFullCache(canonical []models.Project) attempt {
	return func(ctx context.Context) ([]models.Project, bool) {
		cached, ok := l.fromFullCache(ctx)
		if !ok || len(cached) != len(canonical) {
			return nil, false
		}

		byID := make(map[string]models.Project, len(cached))
		for _, p := range cached {
			byID[p.ID] = p
		}

		out := models.CloneProjects(canonical)
		for i := range out {
			c, ok := byID[out[i].ID]
			if !ok || c.IsReal != out[i].IsReal || c.Github != out[i].Github {
				return nil, false
			}
			if IsCandidate(out[i]) {
				out[i].CopyGithubData(c)
			}
		}
		return out, true
	}
}

func (l *Loader) fromCache(context.Context) ([]models.Project, bool) {
	cached, ok := l.cache.Get()
	if !ok {
		return nil, false
	}
	if len(cached) > l.summaryLimit {
		cached = cached[:l.summaryLimit]
	}
	return cached, true
}

// rankByActivity keeps real projects with verified repository data, most
// recent push first, and caches the top of the ranking.
func (l *Loader) rankByActivity(projects []models.Project) attempt {
	return func(ctx context.Context) ([]models.Project, bool) {
		enriched, err := l.enricher.Enrich(ctx, projects)
		if err != nil {
			l.logger.Error().Err(err).Msg("error fetching GitHub data")
			return nil, false
		}

		ranked := make([]models.Project, 0, len(enriched))
		for _, p := range enriched {
			if p.IsReal && p.HasGithubData() && p.LastCommitDate != nil {
				ranked = append(ranked, p)
			}
		}
		if len(ranked) == 0 {
			l.logger.Warn().Msg("no project has GitHub activity data")
			return nil, false
		}

		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].LastCommitDate.After(*ranked[j].LastCommitDate)
		})
		if len(ranked) > l.summaryLimit {
			ranked = ranked[:l.summaryLimit]
		}

		l.cache.Put(ranked)
		return ranked, true
	}
}

// featured serves the summary page when no ranking is available: real
// projects that are finished or under way, in catalog order.
func (l *Loader) featured(projects []models.Project) attempt {
	return func(context.Context) ([]models.Project, bool) {
		out := make([]models.Project, 0, l.summaryLimit)
		for _, p := range projects {
			if len(out) == l.summaryLimit {
				break
			}
			if p.IsReal && (p.Status == models.StatusCompleted || p.Status == models.StatusInProgress) {
				out = append(out, p.Clone())
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		l.logger.Info().Int("count", len(out)).Msg("using featured projects")
		return out, true
	}
}

// head is the last link of the summary chain and always succeeds.
func (l *Loader) head(projects []models.Project) attempt {
	return func(context.Context) ([]models.Project, bool) {
		if len(projects) > l.summaryLimit {
			projects = projects[:l.summaryLimit]
		}
		return models.CloneProjects(projects), true
	}
}
