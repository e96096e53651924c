package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	projecthttpmapper "github.com/Apurer/portfolio-api/internal/domains/projects/adapters/http/mapper"
	projectports "github.com/Apurer/portfolio-api/internal/domains/projects/ports"
	apierrors "github.com/Apurer/portfolio-api/internal/shared/errors"
)

// ProjectsAPI wires HTTP transport with the projects service.
type ProjectsAPI struct {
	service    projectports.Service
	listErrs   *apierrors.ChainedResponder
	createErrs *apierrors.ChainedResponder
	updateErrs *apierrors.ChainedResponder
	deleteErrs *apierrors.ChainedResponder
}

// NewProjectsAPI creates a ProjectsAPI backed by the provided service.
func NewProjectsAPI(service projectports.Service, logger *slog.Logger) ProjectsAPI {
	return ProjectsAPI{
		service:    service,
		listErrs:   projectResponder(logger, "Failed to fetch projects"),
		createErrs: projectResponder(logger, "Failed to save project"),
		updateErrs: projectResponder(logger, "Failed to update project"),
		deleteErrs: projectResponder(logger, "Failed to delete project"),
	}
}

// Get /api/projects
// Lists all projects in insertion order
func (api *ProjectsAPI) ListProjects(c *gin.Context) {
	projects, err := api.service.List(c.Request.Context())
	if err != nil {
		api.listErrs.RespondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"projects": projecthttpmapper.FromDomainList(projects)})
}

// Post /api/projects
// Creates a project
func (api *ProjectsAPI) CreateProject(c *gin.Context) {
	var payload projecthttpmapper.ProjectPayload
	if !bindJSON(c, &payload) {
		return
	}
	project, err := api.service.Create(c.Request.Context(), projecthttpmapper.ToInput(payload))
	if err != nil {
		api.createErrs.RespondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{
		"project": projecthttpmapper.FromDomain(project),
		"message": "Project created successfully",
	})
}

// Put /api/projects/:id
// Replaces the editable fields of a project
func (api *ProjectsAPI) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload projecthttpmapper.ProjectPayload
	if !bindJSON(c, &payload) {
		return
	}
	project, err := api.service.Update(c.Request.Context(), id, projecthttpmapper.ToInput(payload))
	if err != nil {
		api.updateErrs.RespondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"project": projecthttpmapper.FromDomain(project),
		"message": "Project updated successfully",
	})
}

// Delete /api/projects/:id
// Deletes a project
func (api *ProjectsAPI) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		api.deleteErrs.RespondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func parseIDParam(c *gin.Context) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("Invalid project id"))
		return "", false
	}
	return id, true
}
