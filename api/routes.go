package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes registers the read-only catalog and gallery endpoints
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.getHealth())

		// Canonical project-list resource consumed by the loader
		r.Get("/data/projects.json", handlers.projectHandler.getProjectList())

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/technologies", handlers.projectHandler.getTechnologies())

		r.Get("/gallery", handlers.galleryHandler.getGallery())
	})
}

// setupAdminRoutes registers the catalog writes and cache invalidation behind the admin token
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		r.Delete("/cache/github", handlers.cacheHandler.clearGithubCache())
	})
}
