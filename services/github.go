package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const DefaultGithubAPIBase = "https://api.github.com"

var githubURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)

// RepoRef identifies a GitHub repository.
type RepoRef struct {
	Owner string
	Repo  string
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo
}

// ParseGithubURL extracts owner/repo from a repository URL. Placeholder
// values ("" and "#") and profile URLs without a repository segment are
// rejected.
func ParseGithubURL(githubURL string) (RepoRef, bool) {
	githubURL = strings.TrimSpace(githubURL)
	if githubURL == "" || githubURL == "#" {
		return RepoRef{}, false
	}

	match := githubURLPattern.FindStringSubmatch(githubURL)
	if match == nil {
		return RepoRef{}, false
	}

	repo := match[2]
	if i := strings.IndexAny(repo, "?#"); i >= 0 {
		repo = repo[:i]
	}
	repo = strings.TrimSuffix(repo, ".git")
	if match[1] == "" || repo == "" {
		return RepoRef{}, false
	}

	return RepoRef{Owner: match[1], Repo: repo}, true
}

// RepoStats is the subset of repository metadata shown on project cards.
type RepoStats struct {
	Stars    int
	Watchers int
	Forks    int
	PushedAt *time.Time
}

type githubRepoResponse struct {
	StargazersCount  int        `json:"stargazers_count"`
	SubscribersCount int        `json:"subscribers_count"`
	ForksCount       int        `json:"forks_count"`
	PushedAt         *time.Time `json:"pushed_at"`
}

// GithubClient reads repository metadata from the GitHub REST API.
type GithubClient struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

// NewGithubClient builds a client for baseURL. When token is non-empty the
// requests are authenticated through an oauth2 static token source, which
// raises the API rate limit.
func NewGithubClient(baseURL, token string, timeout time.Duration) *GithubClient {
	if baseURL == "" {
		baseURL = DefaultGithubAPIBase
	}

	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		httpClient.Timeout = timeout
	}

	return &GithubClient{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     log.With().Str("component", "githubClient").Logger(),
	}
}

// FetchRepo returns the stats of one repository. Errors wrap the errs
// sentinels: ErrRateLimitExceeded for 403/429, ErrRepositoryNotFound for
// 404, ErrUpstreamStatus for other statuses, ErrTransport and
// ErrMalformedBody otherwise.
func (c *GithubClient) FetchRepo(ctx context.Context, ref RepoRef) (RepoStats, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, ref.Owner, ref.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RepoStats{}, errs.NewTransportError("github", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "portfolio/1.0 (project-gallery)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RepoStats{}, errs.NewTransportError("github "+ref.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return RepoStats{}, errs.NewUpstreamStatusError("github "+ref.String(), resp.StatusCode)
	}

	var body githubRepoResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1024*1024)).Decode(&body); err != nil {
		return RepoStats{}, errs.NewMalformedBodyError("github "+ref.String(), err)
	}

	return RepoStats{
		Stars:    body.StargazersCount,
		Watchers: body.SubscribersCount,
		Forks:    body.ForksCount,
		PushedAt: body.PushedAt,
	}, nil
}
