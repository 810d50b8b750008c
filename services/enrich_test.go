package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/diogo-costa-silva/portfolio/models"
)

// fakeFetcher answers FetchRepo from a table keyed by repo name and counts calls.
type fakeFetcher struct {
	mu      sync.Mutex
	stats   map[string]RepoStats
	status  map[string]int
	calls   int
	fetched []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{stats: map[string]RepoStats{}, status: map[string]int{}}
}

func (f *fakeFetcher) FetchRepo(_ context.Context, ref RepoRef) (RepoStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.fetched = append(f.fetched, ref.Repo)
	if code, ok := f.status[ref.Repo]; ok {
		return RepoStats{}, errs.NewUpstreamStatusError("github", code)
	}
	if s, ok := f.stats[ref.Repo]; ok {
		return s, nil
	}
	return RepoStats{}, errs.NewTransportError("github", fmt.Errorf("no route to %s", ref.Repo))
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func pushed(daysAgo int) *time.Time {
	t := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo)
	return &t
}

func testProject(id string, isReal bool, github string) models.Project {
	return models.Project{
		ID:           id,
		Title:        "Project " + id,
		Description:  "Description of " + id,
		Category:     models.CategoryDevOps,
		Status:       models.StatusCompleted,
		Difficulty:   3,
		Technologies: []string{"Go"},
		IsReal:       isReal,
		Github:       github,
	}
}

// eightProjects has three real projects with repository URLs: r1, r2 and r3.
func eightProjects() []models.Project {
	return []models.Project{
		testProject("p1", false, "#"),
		testProject("r1", true, "https://github.com/me/r1"),
		testProject("p2", false, "https://github.com/me/p2"),
		testProject("r2", true, "https://github.com/me/r2"),
		testProject("p3", false, ""),
		testProject("p4", true, "https://github.com/me"),
		testProject("r3", true, "https://github.com/me/r3"),
		testProject("p5", false, "#"),
	}
}

func TestEnrich_EightProjectsWithOneNotFound(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.stats["r1"] = RepoStats{Stars: 5, Watchers: 2, Forks: 1, PushedAt: pushed(1)}
	fetcher.stats["r2"] = RepoStats{Stars: 9, Watchers: 4, Forks: 3, PushedAt: pushed(3)}
	fetcher.status["r3"] = 404

	input := eightProjects()
	out, err := NewEnricher(fetcher, 0).Enrich(context.Background(), input)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if len(out) != len(input) {
		t.Fatalf("count: got %d, want %d", len(out), len(input))
	}
	for i := range input {
		if out[i].ID != input[i].ID {
			t.Errorf("order at %d: got %s, want %s", i, out[i].ID, input[i].ID)
		}
	}

	byID := map[string]models.Project{}
	for _, p := range out {
		byID[p.ID] = p
	}
	for _, id := range []string{"r1", "r2"} {
		p := byID[id]
		if !p.HasGithubData() || p.Stars == nil || p.LastCommitDate == nil {
			t.Errorf("%s: expected populated stats, got %+v", id, p)
		}
	}
	if got := *byID["r2"].Stars; got != 9 {
		t.Errorf("r2 stars: got %d, want 9", got)
	}

	r3 := byID["r3"]
	if r3.GithubDataSuccess == nil || *r3.GithubDataSuccess {
		t.Errorf("r3: got success %v, want false", r3.GithubDataSuccess)
	}
	if r3.LastCommitDate != nil || r3.Stars != nil {
		t.Errorf("r3: stats should be unknown, got %+v", r3)
	}

	if got := fetcher.callCount(); got != 3 {
		t.Errorf("calls: got %d, want 3", got)
	}
}

func TestEnrich_NonCandidatesPassThrough(t *testing.T) {
	fetcher := newFakeFetcher()
	input := []models.Project{
		testProject("fake", false, "https://github.com/me/fake"),
		testProject("profile", true, "https://github.com/me"),
		testProject("placeholder", true, "#"),
	}

	out, _ := NewEnricher(fetcher, 2).Enrich(context.Background(), input)

	if got := fetcher.callCount(); got != 0 {
		t.Errorf("calls: got %d, want 0", got)
	}
	for i, p := range out {
		if p.GithubDataSuccess != nil || p.Stars != nil {
			t.Errorf("%s enriched: %+v", input[i].ID, p)
		}
	}
}

func TestEnrich_RateLimitedIsFlagged(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.status["r1"] = 429

	out, _ := NewEnricher(fetcher, 0).Enrich(context.Background(), []models.Project{
		testProject("r1", true, "https://github.com/me/r1"),
	})

	if !out[0].GithubRateLimited || out[0].HasGithubData() {
		t.Errorf("got rateLimited=%v success=%v", out[0].GithubRateLimited, out[0].GithubDataSuccess)
	}
}

func TestEnrich_DoesNotMutateInput(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.stats["r1"] = RepoStats{Stars: 1, PushedAt: pushed(0)}
	input := []models.Project{testProject("r1", true, "https://github.com/me/r1")}

	NewEnricher(fetcher, 0).Enrich(context.Background(), input)

	if input[0].GithubDataSuccess != nil {
		t.Error("input project was enriched in place")
	}
}

func TestEnrich_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEnricher(newFakeFetcher(), 0).Enrich(ctx, eightProjects())
	if err == nil {
		t.Error("expected context error")
	}
}

// gatedFetcher blocks r1 until r2 has been requested, so it only finishes
// when both requests are in flight together.
type gatedFetcher struct {
	r2Requested chan struct{}
	once        sync.Once
}

func (f *gatedFetcher) FetchRepo(ctx context.Context, ref RepoRef) (RepoStats, error) {
	switch ref.Repo {
	case "r1":
		select {
		case <-f.r2Requested:
			return RepoStats{Stars: 1, PushedAt: pushed(1)}, nil
		case <-time.After(2 * time.Second):
			return RepoStats{}, errs.NewTransportError("github", fmt.Errorf("r2 never requested"))
		}
	case "r2":
		f.once.Do(func() { close(f.r2Requested) })
		return RepoStats{}, errs.NewUpstreamStatusError("github", 404)
	}
	return RepoStats{Stars: 3, PushedAt: pushed(3)}, nil
}

func TestEnrich_SlowRepositoryDoesNotBlockOthers(t *testing.T) {
	e := NewEnricher(&gatedFetcher{r2Requested: make(chan struct{})}, 0)

	got, err := e.Enrich(context.Background(), eightProjects())
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	byID := map[string]models.Project{}
	for _, p := range got {
		byID[p.ID] = p
	}
	if !byID["r1"].HasGithubData() {
		t.Error("r1 was not fetched concurrently with r2")
	}
	if byID["r2"].GithubDataSuccess == nil || byID["r2"].HasGithubData() {
		t.Errorf("r2: got %v, want failed marker", byID["r2"].GithubDataSuccess)
	}
	if !byID["r3"].HasGithubData() {
		t.Error("r3 missing data")
	}
}

// countingFetcher records the highest number of concurrent requests.
type countingFetcher struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	calls       int
}

func (f *countingFetcher) FetchRepo(ctx context.Context, ref RepoRef) (RepoStats, error) {
	f.mu.Lock()
	f.inFlight++
	f.calls++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	time.Sleep(10 * time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return RepoStats{PushedAt: pushed(1)}, nil
}

func TestEnrich_ConcurrencyLimit(t *testing.T) {
	tests := []struct {
		limit   int
		wantMax int
	}{
		{1, 1},
		{2, 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit %d", tt.limit), func(t *testing.T) {
			f := &countingFetcher{}
			got, err := NewEnricher(f, tt.limit).Enrich(context.Background(), eightProjects())
			if err != nil {
				t.Fatalf("Enrich: %v", err)
			}
			if f.calls != 3 {
				t.Errorf("calls: got %d, want 3", f.calls)
			}
			if f.maxInFlight > tt.wantMax {
				t.Errorf("max in flight: got %d, want at most %d", f.maxInFlight, tt.wantMax)
			}
			for _, p := range got {
				if IsCandidate(p) && !p.HasGithubData() {
					t.Errorf("%s not enriched", p.ID)
				}
			}
		})
	}
}
