package config

import (
	"fmt"
	"time"
)

// Settings is the typed view of the environment used to wire the app.
type Settings struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	DBType     string
	DSN        string
	SQLitePath string
	ReplicaDSN string

	AcceptedOrigins []string
	AdminJWTSecret  string

	ProjectsURL      string
	ProjectsS3Bucket string
	ProjectsS3Key    string
	AWSRegion        string

	GithubAPIBase       string
	GithubToken         string
	GithubTokenSSMParam string
	GithubConcurrency   int
	GithubCacheTTL      time.Duration
	SummaryLimit        int

	LogLevel string
	LogJSON  bool
}

// Load reads every setting from the config map, applying defaults.
func Load(c map[string]string) Settings {
	port := GetString(c, "PORT", "8080")

	return Settings{
		Port:         port,
		ReadTimeout:  GetSeconds(c, "READ_TIMEOUT_SECONDS", 180*time.Second),
		WriteTimeout: GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180*time.Second),
		IdleTimeout:  GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180*time.Second),

		DBType:     GetString(c, "DB_TYPE", "sqlite"),
		DSN:        buildDSN(c),
		SQLitePath: GetString(c, "SQLITE_PATH", "portfolio.db"),
		ReplicaDSN: GetString(c, "DB_REPLICA_DSN", ""),

		AcceptedOrigins: GetList(c, "ACCEPTED_ORIGINS"),
		AdminJWTSecret:  GetString(c, "ADMIN_JWT_SECRET", ""),

		ProjectsURL:      GetString(c, "PROJECTS_URL", "http://localhost:"+port+"/data/projects.json"),
		ProjectsS3Bucket: GetString(c, "PROJECTS_S3_BUCKET", ""),
		ProjectsS3Key:    GetString(c, "PROJECTS_S3_KEY", "data/projects.json"),
		AWSRegion:        GetString(c, "AWS_REGION", "eu-west-1"),

		GithubAPIBase:       GetString(c, "GITHUB_API_BASE", "https://api.github.com"),
		GithubToken:         GetString(c, "GITHUB_TOKEN", ""),
		GithubTokenSSMParam: GetString(c, "GITHUB_TOKEN_SSM_PARAM", ""),
		GithubConcurrency:   GetInt(c, "GITHUB_CONCURRENCY", 0),
		GithubCacheTTL:      GetSeconds(c, "GITHUB_CACHE_TTL_SECONDS", time.Hour),
		SummaryLimit:        GetInt(c, "SUMMARY_LIMIT", 6),

		LogLevel: GetString(c, "LOG_LEVEL", "info"),
		LogJSON:  GetBool(c, "LOG_JSON", false),
	}
}

// buildDSN builds the postgres connection string for the configured DB_TYPE.
func buildDSN(c map[string]string) string {
	switch GetString(c, "DB_TYPE", "sqlite") {
	case "supa":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			GetString(c, "SUPABASE_DB_HOST", ""),
			GetString(c, "SUPABASE_DB_USER", ""),
			GetString(c, "SUPABASE_DB_PASSWORD", ""),
			GetString(c, "SUPABASE_DB_NAME", ""),
			GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
	case "postgres":
		return GetString(c, "DATABASE_URL", "")
	default:
		return ""
	}
}
