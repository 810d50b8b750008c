package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/diogo-costa-silva/portfolio/models"
)

const maxProjectListBytes = 4 * 1024 * 1024

// ProjectSource yields the canonical project list.
type ProjectSource interface {
	FetchProjects(ctx context.Context) ([]models.Project, error)
}

// HTTPSource reads the list from a JSON resource shaped {"projects": [...]}.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{url: url, client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) FetchProjects(ctx context.Context) ([]models.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errs.NewTransportError("projects", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errs.NewTransportError("projects", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.NewUpstreamStatusError("projects", resp.StatusCode)
	}

	return decodeProjectList(resp.Body, "projects")
}

// objectGetter is the part of *s3.Client the source needs.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the list from an S3 object with the same JSON shape.
type S3Source struct {
	client objectGetter
	bucket string
	key    string
}

func NewS3Source(client objectGetter, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// NewS3SourceFromEnv builds an S3 client from the default AWS credential chain.
func NewS3SourceFromEnv(ctx context.Context, region, bucket, key string) (*S3Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Source(s3.NewFromConfig(cfg), bucket, key), nil
}

func (s *S3Source) FetchProjects(ctx context.Context) ([]models.Project, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, errs.NewTransportError(fmt.Sprintf("s3://%s/%s", s.bucket, s.key), err)
	}
	defer out.Body.Close()

	return decodeProjectList(out.Body, "s3 projects")
}

// decodeProjectList parses {"projects": [...]}. A missing or empty list is
// malformed: the loader has nothing to render from it.
func decodeProjectList(r io.Reader, service string) ([]models.Project, error) {
	var list models.ProjectList
	if err := json.NewDecoder(io.LimitReader(r, maxProjectListBytes)).Decode(&list); err != nil {
		return nil, errs.NewMalformedBodyError(service, err)
	}
	if len(list.Projects) == 0 {
		return nil, errs.NewMalformedBodyError(service, nil)
	}
	return list.Projects, nil
}

// sourceFailureReason names the class of a project-list failure for logs.
func sourceFailureReason(err error) string {
	switch {
	case errs.IsTransportError(err):
		return "transport"
	case errs.IsMalformedBodyError(err):
		return "malformed"
	default:
		return "status"
	}
}
