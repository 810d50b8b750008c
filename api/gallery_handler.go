package api

import (
	"context"
	"net/http"

	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/diogo-costa-silva/portfolio/gallery"
	"github.com/diogo-costa-silva/portfolio/models"
	"github.com/diogo-costa-silva/portfolio/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// projectLoader is satisfied by *services.Loader.
type projectLoader interface {
	LoadProjects(ctx context.Context, page services.PageContext) []models.Project
}

type galleryHandler struct {
	responder Responder
	logger    zerolog.Logger
	loader    projectLoader
}

func newGalleryHandler(loader projectLoader) galleryHandler {
	logger := log.With().Str("handlerName", "galleryHandler").Logger()

	return galleryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		loader:    loader,
	}
}

// getGallery renders the gallery of a page for the filters in the query string
// @Summary Render gallery
// @Description Loads the page's projects and applies category, status, tech, real and q filters
// @Tags Gallery
// @Produce json
// @Param page query string false "index (default) or projects"
// @Param category query []string false "Category keys"
// @Param status query []string false "Status keys"
// @Param tech query []string false "Technology names"
// @Param real query bool false "Only real projects"
// @Param q query string false "Search term"
// @Param lang query string false "pt (default) or en"
// @Success 200 {object} GalleryResponse "Rendered gallery"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown page or language"
// @Router /gallery [get]
func (h galleryHandler) getGallery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		page, err := services.ParsePageContext(query.Get("page"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("page", err.Error()))
			return
		}

		lang, err := gallery.ParseLanguage(query.Get("lang"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("lang", err.Error()))
			return
		}

		projects := h.loader.LoadProjects(r.Context(), page)
		if h.responder.CheckContextTimeout(w, r) {
			return
		}

		controller := gallery.NewController(gallery.NewStore(projects), nil)
		controller.SetLanguage(lang, nil)
		rendering := controller.SetState(gallery.ParseQuery(query))

		h.logger.Debug().
			Str("page", page.String()).
			Str("lang", string(lang)).
			Int("projects", len(projects)).
			Int("visible", rendering.Count).
			Msg("gallery rendered")

		h.responder.WriteJSON(w, GalleryResponse{
			Page:       page.String(),
			Gallery:    rendering,
			ChipLinks:  chipLinks(page, rendering),
			ClearQuery: pageQuery(page, rendering.Language, gallery.FilterState{}),
		})
	}
}

func chipLinks(page services.PageContext, rendering gallery.Rendering) []ChipLink {
	links := make([]ChipLink, 0, len(rendering.Chips))
	for _, chip := range rendering.Chips {
		links = append(links, ChipLink{
			Chip:        chip,
			RemoveQuery: pageQuery(page, rendering.Language, rendering.Filters.Without(chip)),
		})
	}
	return links
}

// pageQuery encodes state together with the page and language it applies to
func pageQuery(page services.PageContext, lang gallery.Language, state gallery.FilterState) string {
	q := gallery.EncodeQuery(state)
	q.Set("page", page.String())
	q.Set("lang", string(lang))
	return q.Encode()
}
