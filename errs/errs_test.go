package errs

import (
	"errors"
	"net/http"
	"testing"
)

func TestNewUpstreamStatusError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, ErrRateLimitExceeded},
		{http.StatusTooManyRequests, ErrRateLimitExceeded},
		{http.StatusNotFound, ErrRepositoryNotFound},
		{http.StatusBadGateway, ErrUpstreamStatus},
	}

	for _, tt := range tests {
		err := NewUpstreamStatusError("github", tt.status)
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: got %v, want wrapping %v", tt.status, err, tt.want)
		}
	}
}

func TestApiErr_UnwrapMatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("record not found")
	err := NewDatabaseError("find", "project", cause)

	if err.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode: got %d, want %d", err.StatusCode, http.StatusNotFound)
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound: got false for %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(cause): got false")
	}
	if got := err.GetFullError(); got != "project not found: Failed to find project -> record not found" {
		t.Errorf("GetFullError: got %q", got)
	}
}

func TestNewDatabaseError_Duplicate(t *testing.T) {
	err := NewDatabaseError("create", "project", errors.New("UNIQUE constraint failed: projects.title"))
	if err.StatusCode != http.StatusConflict || !IsAlreadyExists(err) {
		t.Errorf("got %d %v, want 409 already exists", err.StatusCode, err)
	}
}

func TestTransportAndStorageWrapping(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	if err := NewTransportError("github", cause); !IsTransportError(err) || !errors.Is(err, cause) {
		t.Errorf("transport wrapping lost: %v", err)
	}
	if err := NewStorageError("read cache", cause); !IsStorageError(err) {
		t.Errorf("storage wrapping lost: %v", err)
	}
	if err := NewMalformedBodyError("projects", nil); !IsMalformedBodyError(err) {
		t.Errorf("malformed wrapping lost: %v", err)
	}
}

func TestTokenErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"missing", NewMissingTokenError(), IsMissingTokenError},
		{"expired", NewExpiredTokenError(), IsExpiredTokenError},
		{"invalid", NewInvalidTokenError(errors.New("signature is invalid")), IsInvalidTokenError},
		{"missing field", NewMissingRequiredFieldError("title"), IsMissingRequiredFieldError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("got %v, checker returned false", tt.err)
			}
		})
	}

	if IsExpiredTokenError(NewMissingTokenError()) {
		t.Error("missing token matched expired checker")
	}
	if got := NewAdminLockedError().StatusCode; got != http.StatusForbidden {
		t.Errorf("admin locked: got %d, want %d", got, http.StatusForbidden)
	}
}
