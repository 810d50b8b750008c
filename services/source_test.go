package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/diogo-costa-silva/portfolio/errs"
)

const oneProjectJSON = `{"projects":[{"id":"p1","title":"One","description":"d","category":"web","status":"planned","difficulty":2,"technologies":["Go","HTMX"],"isReal":true,"github":"https://github.com/me/one"}]}`

func TestHTTPSource_FetchProjects(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr func(error) bool
	}{
		{"ok", http.StatusOK, oneProjectJSON, nil},
		{"server error", http.StatusInternalServerError, "", func(err error) bool { return errors.Is(err, errs.ErrUpstreamStatus) }},
		{"malformed", http.StatusOK, `{"projects":`, errs.IsMalformedBodyError},
		{"empty list", http.StatusOK, `{"projects":[]}`, errs.IsMalformedBodyError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			projects, err := NewHTTPSource(srv.URL, time.Second).FetchProjects(context.Background())
			if tt.wantErr != nil {
				if !tt.wantErr(err) {
					t.Errorf("err: got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchProjects: %v", err)
			}
			if len(projects) != 1 || projects[0].ID != "p1" || len(projects[0].Technologies) != 2 {
				t.Errorf("projects: got %+v", projects)
			}
		})
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := NewHTTPSource(url, time.Second).FetchProjects(context.Background()); !errs.IsTransportError(err) {
		t.Errorf("err: got %v, want transport error", err)
	}
}

type fakeObjectGetter struct {
	body string
	err  error
	in   *s3.GetObjectInput
}

func (f *fakeObjectGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3Source_FetchProjects(t *testing.T) {
	getter := &fakeObjectGetter{body: oneProjectJSON}
	projects, err := NewS3Source(getter, "site-bucket", "data/projects.json").FetchProjects(context.Background())
	if err != nil {
		t.Fatalf("FetchProjects: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("projects: got %d, want 1", len(projects))
	}
	if aws.ToString(getter.in.Bucket) != "site-bucket" || aws.ToString(getter.in.Key) != "data/projects.json" {
		t.Errorf("input: got %s/%s", aws.ToString(getter.in.Bucket), aws.ToString(getter.in.Key))
	}

	failing := &fakeObjectGetter{err: errors.New("access denied")}
	if _, err := NewS3Source(failing, "b", "k").FetchProjects(context.Background()); !errs.IsTransportError(err) {
		t.Errorf("err: got %v, want transport error", err)
	}
}

type fakeParameterGetter struct {
	value *string
}

func (f fakeParameterGetter) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	if !aws.ToBool(in.WithDecryption) {
		return nil, errors.New("parameter must be decrypted")
	}
	return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Value: f.value}}, nil
}

func TestReadParameter(t *testing.T) {
	got, err := readParameter(context.Background(), fakeParameterGetter{value: aws.String("ghp_x")}, "/portfolio/github")
	if err != nil || got != "ghp_x" {
		t.Errorf("got %q %v, want ghp_x", got, err)
	}

	if _, err := readParameter(context.Background(), fakeParameterGetter{}, "/portfolio/github"); err == nil {
		t.Error("expected error for empty parameter")
	}
}

func TestResolveGithubToken_PrefersExplicitToken(t *testing.T) {
	got, err := ResolveGithubToken(context.Background(), "direct", "/portfolio/github", "eu-west-1")
	if err != nil || got != "direct" {
		t.Errorf("got %q %v, want direct", got, err)
	}
}

func TestFallbackProjects(t *testing.T) {
	projects := FallbackProjects()
	if len(projects) == 0 {
		t.Fatal("fallback list is empty")
	}

	seen := map[string]bool{}
	for _, p := range projects {
		if field := p.Validate(); field != "" {
			t.Errorf("%s: invalid %s", p.ID, field)
		}
		if seen[p.ID] {
			t.Errorf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}

	projects[0].Technologies[0] = "changed"
	if FallbackProjects()[0].Technologies[0] == "changed" {
		t.Error("FallbackProjects shares its backing list")
	}
}
