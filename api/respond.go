package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus writes data with the given status. The content type is set
// before the header is flushed.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Check if response is too large (e.g., > 10MB)
	const maxResponseSize = 10 * 1024 * 1024 // 10MB
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large, truncating")

		// Return a truncated response with error info
		truncatedResponse := map[string]interface{}{
			"error":        "Response too large",
			"message":      "The requested data exceeds the maximum response size",
			"maxSizeMB":    maxResponseSize / (1024 * 1024),
			"actualSizeMB": len(jsonData) / (1024 * 1024),
		}

		truncatedJSON, err := json.Marshal(truncatedResponse)
		if err != nil {
			r.logger.Error().Err(err).Msg("error marshaling truncated response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write(truncatedJSON)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred",
			"details": err.Error(), // Include actual error in development
			"status":  "error",
		})
		return
	}

	r.logRejected(apiErr)

	// Build response based on error details
	response := map[string]interface{}{
		"error":  apiErr.Error(),
		"status": "error",
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	// Add details if present
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	// Add full error chain for debugging (especially useful for database errors)
	if apiErr.Cause != nil {
		response["cause"] = apiErr.GetFullError()
	}

	// For expected errors, set the status code from apiErr
	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// logRejected records client errors; server errors are logged by
// LogInternalServerErrors.
func (r Responder) logRejected(apiErr *errs.ApiErr) {
	switch {
	case errs.IsNotFound(apiErr):
		r.logger.Debug().Str("error", apiErr.Error()).Msg("resource not found")
	case errs.IsMalformedPayloadError(apiErr):
		r.logger.Info().Str("field", apiErr.Field).Err(apiErr.Cause).Msg("rejected malformed payload")
	case errs.IsMissingRequiredFieldError(apiErr), errs.IsInvalidFieldError(apiErr):
		r.logger.Info().Str("field", apiErr.Field).Str("details", apiErr.Details).Msg("rejected request")
	}
}

// WriteTimeoutError writes a standardized timeout error response
func (r Responder) WriteTimeoutError(w http.ResponseWriter, timeout time.Duration, endpoint string) {
	r.WriteJSONStatus(w, http.StatusRequestTimeout, map[string]interface{}{
		"error":           "Request timeout",
		"message":         "The request took too long to process",
		"timeout_seconds": int(timeout.Seconds()),
		"status":          "timeout",
		"endpoint":        endpoint,
	})
}

// CheckContextTimeout checks if the request context has timed out
func (r Responder) CheckContextTimeout(w http.ResponseWriter, req *http.Request) bool {
	select {
	case <-req.Context().Done():
		r.WriteTimeoutError(w, 30*time.Second, req.URL.Path)
		return true
	default:
		return false
	}
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
