package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/diogo-costa-silva/portfolio/config"
	"github.com/diogo-costa-silva/portfolio/database"
	"github.com/diogo-costa-silva/portfolio/services"
)

const upstreamTimeout = 10 * time.Second

// app holds the wired dependencies shared by the commands.
type app struct {
	db     database.Database
	loader *services.Loader
}

func openDatabase(settings config.Settings) (database.Database, error) {
	gormDB, err := database.Open(settings)
	if err != nil {
		return database.Database{}, fmt.Errorf("initialize database: %w", err)
	}
	return database.New(gormDB), nil
}

func newApp(ctx context.Context, settings config.Settings) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openDatabase(settings)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	token, err := services.ResolveGithubToken(ctx, settings.GithubToken, settings.GithubTokenSSMParam, settings.AWSRegion)
	if err != nil {
		// Anonymous requests still work, only with a lower rate limit.
		log.Warn().Err(err).Msg("GitHub token unavailable, using anonymous requests")
		token = ""
	}

	client := services.NewGithubClient(settings.GithubAPIBase, token, upstreamTimeout)
	enricher := services.NewEnricher(client, settings.GithubConcurrency)
	cache, fullCache := newCaches(db, settings)

	source, err := newSource(ctx, settings)
	if err != nil {
		return nil, err
	}

	return &app{
		db:     db,
		loader: services.NewLoader(source, enricher, cache, settings.SummaryLimit, services.WithFullPageCache(fullCache)),
	}, nil
}

// newCaches returns the summary selection cache and the full-page enrichment cache.
// Both share the cache table and TTL under different keys.
func newCaches(db database.Database, settings config.Settings) (*services.Cache, *services.Cache) {
	summary := services.NewCache(db.CacheRepo(), settings.GithubCacheTTL)
	full := services.NewCache(db.CacheRepo(), settings.GithubCacheTTL, services.WithCacheKey(services.FullPageCacheKey))
	return summary, full
}

// newSource picks the S3 object when a bucket is configured, the HTTP resource otherwise.
func newSource(ctx context.Context, settings config.Settings) (services.ProjectSource, error) {
	if settings.ProjectsS3Bucket != "" {
		source, err := services.NewS3SourceFromEnv(ctx, settings.AWSRegion, settings.ProjectsS3Bucket, settings.ProjectsS3Key)
		if err != nil {
			return nil, fmt.Errorf("initialize S3 project source: %w", err)
		}
		log.Info().Str("bucket", settings.ProjectsS3Bucket).Str("key", settings.ProjectsS3Key).Msg("loading projects from S3")
		return source, nil
	}

	log.Info().Str("url", settings.ProjectsURL).Msg("loading projects over HTTP")
	return services.NewHTTPSource(settings.ProjectsURL, upstreamTimeout), nil
}
