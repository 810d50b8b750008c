package api

import (
	"net/http"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type cacheHandler struct {
	responder Responder
	logger    zerolog.Logger
	cache     cacheClearer
}

func newCacheHandler(cache cacheClearer) cacheHandler {
	logger := log.With().Str("handlerName", "cacheHandler").Logger()

	return cacheHandler{
		responder: NewResponder(logger),
		logger:    logger,
		cache:     cache,
	}
}

// clearGithubCache drops the enrichment snapshots so the next page load refetches GitHub data
// @Summary Clear GitHub cache
// @Tags Cache
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatusResponse "Success message"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Failure 503 {object} ErrorResponse "Service Unavailable - Cache storage unavailable"
// @Router /cache/github [delete]
func (h cacheHandler) clearGithubCache() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.cache.ClearCache(); err != nil {
			if errs.IsStorageError(err) {
				h.responder.WriteError(w, errs.NewServiceUnavailableError("failed to clear GitHub cache", err))
				return
			}
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to clear GitHub cache", err))
			return
		}

		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "GitHub cache cleared",
		})
	}
}
