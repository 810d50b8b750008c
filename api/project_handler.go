package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/diogo-costa-silva/portfolio/database"
	"github.com/diogo-costa-silva/portfolio/errs"
	"github.com/diogo-costa-silva/portfolio/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	techRepo    *database.ProjectTechnologyRepo
	cache       cacheClearer
}

func newProjectHandler(projectRepo *database.ProjectRepo, techRepo *database.ProjectTechnologyRepo, cache cacheClearer) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		techRepo:    techRepo,
		cache:       cache,
	}
}

func derefProjects(projects []*models.Project) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, *p)
	}
	return out
}

// getProjectList serves the canonical project-list resource
// @Summary Project list resource
// @Description Returns the catalog in the {"projects": [...]} shape the loader consumes
// @Tags Projects
// @Produce json
// @Success 200 {object} models.ProjectList "Project list"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /data/projects.json [get]
func (h projectHandler) getProjectList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, models.ProjectList{Projects: derefProjects(projects)})
	}
}

// getAllProjects retrieves all projects with their technologies
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {object} ProjectCollection "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: derefProjects(projects),
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching project"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// getTechnologies lists every technology used by the catalog
// @Summary List technologies
// @Tags Projects
// @Produce json
// @Success 200 {array} string "Technology names"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching technologies"
// @Router /technologies [get]
func (h projectHandler) getTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := h.techRepo.DistinctNames()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find technologies", "technologies", err))
			return
		}
		if names == nil {
			names = []string{}
		}

		h.responder.WriteJSON(w, names)
	}
}

// decodeProject reads and validates a project payload
func (h projectHandler) decodeProject(r *http.Request) (models.Project, error) {
	bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, 1024*1024))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		return models.Project{}, errs.NewBadRequestError("failed to read request body")
	}

	var project models.Project
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&project); err != nil {
		h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
		return models.Project{}, errs.NewMalformedPayloadError("project", err)
	}

	return project, nil
}

func validateProject(project models.Project) error {
	field := project.Validate()
	switch {
	case field == "":
		return nil
	case field == "difficulty":
		return errs.NewInvalidFieldError("difficulty", "must be between 1 and 5")
	case field == "category" && project.Category != "":
		return errs.NewInvalidFieldError("category", "unknown category "+string(project.Category))
	case field == "status" && project.Status != "":
		return errs.NewInvalidFieldError("status", "unknown status "+string(project.Status))
	}
	return errs.NewMissingRequiredFieldError(field)
}

// invalidateCache drops the enrichment snapshots after a catalog change so
// both pages are rebuilt from the new catalog.
func (h projectHandler) invalidateCache() {
	if err := h.cache.ClearCache(); err != nil {
		h.logger.Error().Err(err).Msg("failed to clear GitHub cache after catalog change")
	}
}

func (h projectHandler) adminLogger(r *http.Request) *zerolog.Logger {
	logger := h.logger
	if subject, err := ctxGetAdminSubject(r.Context()); err == nil {
		logger = logger.With().Str("admin", subject).Logger()
	}
	return &logger
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 409 {object} ErrorResponse "Conflict - Project already exists"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.decodeProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := validateProject(project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("project"))
			return
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		createdProject, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created project", "project", err))
			return
		}

		h.invalidateCache()
		h.adminLogger(r).Info().Str("projectID", project.ID).Msg("project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, createdProject)
	}
}

// updateProject replaces an existing project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID"
// @Param project body models.Project true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating project"
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		existingProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if existingProject == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		project, err := h.decodeProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Ensure ID matches
		project.ID = projectID

		if err := validateProject(project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Update(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		updatedProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.invalidateCache()
		h.adminLogger(r).Info().Str("projectID", projectID).Msg("project updated")
		h.responder.WriteJSON(w, updatedProject)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID"
// @Success 200 {object} StatusResponse "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting project"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		existingProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existingProject == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.invalidateCache()
		h.adminLogger(r).Info().Str("projectID", projectID).Msg("project deleted")
		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "project deleted successfully",
		})
	}
}
