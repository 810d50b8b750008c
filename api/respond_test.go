package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/rs/zerolog"
)

func TestWriteError_LogsRejectedRequests(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantLevel string
		wantMsg   string
		wantField string
	}{
		{"not found", errs.NewNotFoundError("project x"), http.StatusNotFound, "debug", "resource not found", ""},
		{"malformed", errs.NewMalformedPayloadError("project", errors.New("eof")), http.StatusBadRequest, "info", "rejected malformed payload", "payload"},
		{"missing field", errs.NewMissingRequiredFieldError("title"), http.StatusBadRequest, "info", "rejected request", "title"},
		{"invalid field", errs.NewInvalidFieldError("lang", "unsupported"), http.StatusBadRequest, "info", "rejected request", "lang"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := httptest.NewRecorder()
			NewResponder(zerolog.New(&buf)).WriteError(rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantCode)
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("decode log %q: %v", buf.String(), err)
			}
			if entry["level"] != tt.wantLevel || entry["message"] != tt.wantMsg {
				t.Errorf("log: got %v/%v, want %s/%s", entry["level"], entry["message"], tt.wantLevel, tt.wantMsg)
			}
			if tt.wantField != "" && entry["field"] != tt.wantField {
				t.Errorf("field: got %v, want %s", entry["field"], tt.wantField)
			}
		})
	}
}

func TestWriteError_ServerErrorsNotLoggedAsRejected(t *testing.T) {
	var buf bytes.Buffer
	rec := httptest.NewRecorder()
	NewResponder(zerolog.New(&buf)).WriteError(rec, errs.NewInternalErrorWithCause("boom", errors.New("db down")))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log: %s", buf.String())
	}
}
