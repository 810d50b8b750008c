package api

import (
	"net/http"
	"time"

	"github.com/diogo-costa-silva/portfolio/database"
	"github.com/rs/zerolog/log"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, svc Services, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(startupTime),
		projectHandler: newProjectHandler(database.ProjectRepo(), database.ProjectTechnologyRepo(), svc.Loader),
		galleryHandler: newGalleryHandler(svc.Loader),
		cacheHandler:   newCacheHandler(svc.Loader),
	}
}

type healthHandler struct {
	responder   Responder
	startupTime time.Time
}

func newHealthHandler(startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{responder: NewResponder(logger), startupTime: startupTime}
}

// getHealth reports liveness and uptime
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service status"
// @Router /health [get]
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{
			"status":    "ok",
			"startedAt": h.startupTime.UTC().Format(time.RFC3339),
			"uptime":    time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
