package api

import (
	"github.com/diogo-costa-silva/portfolio/gallery"
	"github.com/diogo-costa-silva/portfolio/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	projectHandler projectHandler
	galleryHandler galleryHandler
	cacheHandler   cacheHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// ProjectCollection is the response of GET /projects
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

// ChipLink is an applied filter with the query that removes it
type ChipLink struct {
	gallery.Chip
	RemoveQuery string `json:"removeQuery"`
}

// GalleryResponse is the response of GET /gallery
type GalleryResponse struct {
	Page       string            `json:"page"`
	Gallery    gallery.Rendering `json:"gallery"`
	ChipLinks  []ChipLink        `json:"chipLinks"`
	ClearQuery string            `json:"clearQuery"`
}

// StatusResponse is the body of successful writes without a resource to return
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
