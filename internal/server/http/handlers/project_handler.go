package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/server/http/dto"
)

// ProjectHandler manages project endpoints.
type ProjectHandler struct {
	facade ProjectFacade
}

// NewProjectHandler constructs ProjectHandler.
func NewProjectHandler(facade ProjectFacade) *ProjectHandler {
	return &ProjectHandler{facade: facade}
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	project, err := h.facade.CreateProject(c.Request.Context(), CurrentIdentity(c), req.Title, req.Description, req.Budget, req.Deadline)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectResponse(*project))
}

// Publish handles POST /api/projects/:id/publish.
func (h *ProjectHandler) Publish(c *gin.Context) {
	project, err := h.facade.PublishProject(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(*project))
}

// Edit handles PATCH /api/projects/:id.
func (h *ProjectHandler) Edit(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	patch := model.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Featured:    req.Featured,
	}
	project, err := h.facade.EditProject(c.Request.Context(), CurrentIdentity(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(*project))
}

// Get handles GET /api/projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	details, err := h.facade.Project(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ProjectDetailsResponse{
		ProjectResponse: toProjectResponse(details.Project),
		Bids:            make([]dto.BidResponse, 0, len(details.Bids)),
	}
	for _, b := range details.Bids {
		resp.Bids = append(resp.Bids, toBidResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(c *gin.Context) {
	filter := model.ProjectFilter{
		Status:   model.ProjectStatus(c.Query("status")),
		Featured: isTrue(c.Query("featured")),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "limit must be a number")
			return
		}
		filter.Limit = limit
	}

	projects, err := h.facade.Projects(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}
