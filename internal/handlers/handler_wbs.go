package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/dto"
	"github.com/pbk-app/project_bookkeeping_app/internal/middleware"
)

// wbsHandler handles HTTP requests related to project scope.
type wbsHandler struct {
	wbsService portssvc.WbsSvcFacade
}

// newWbsHandler creates a new wbsHandler.
func newWbsHandler(ws portssvc.WbsSvcFacade) *wbsHandler {
	return &wbsHandler{wbsService: ws}
}

// registerWbsRoutes registers routes related to project scope.
func registerWbsRoutes(rg *gin.RouterGroup, wbsService portssvc.WbsSvcFacade) {
	h := newWbsHandler(wbsService)

	wbs := rg.Group("/projects/:projectID/wbs")
	{
		wbs.POST("", h.bootstrapWbs)
		wbs.GET("/jobs", h.listJobs)
		wbs.POST("/jobs", h.addJob)
		// Job ids contain slashes ("gh:user/repo#42"), so removal and the
		// existence check take the id as a query parameter.
		wbs.DELETE("/jobs", h.removeJob)
		wbs.GET("/jobs/exists", h.jobExists)
	}
}

// bootstrapWbs godoc
// @Summary Bootstrap a project WBS
// @Description Ensures the project's WBS document exists; idempotent
// @Tags wbs
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 204
// @Failure 500 {object} map[string]string "Failed to bootstrap WBS"
// @Router /projects/{projectID}/wbs [post]
func (h *wbsHandler) bootstrapWbs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	if err := h.wbsService.Bootstrap(c.Request.Context(), projectID); err != nil {
		logger.Error("Failed to bootstrap WBS", slog.String("project_id", projectID), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listJobs godoc
// @Summary List jobs in scope
// @Tags wbs
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {array} dto.JobResponse
// @Failure 500 {object} map[string]string "Failed to list jobs"
// @Router /projects/{projectID}/wbs/jobs [get]
func (h *wbsHandler) listJobs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	jobs, err := h.wbsService.List(c.Request.Context(), projectID)
	if err != nil {
		logger.Error("Failed to list jobs", slog.String("project_id", projectID), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponses(jobs))
}

// addJob godoc
// @Summary Add a job to scope
// @Tags wbs
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   job body dto.AddJobRequest true "Job to add"
// @Success 201
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 409 {object} map[string]string "Job already in scope"
// @Router /projects/{projectID}/wbs/jobs [post]
func (h *wbsHandler) addJob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.AddJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addJob", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.wbsService.Add(c.Request.Context(), projectID, req.Job); err != nil {
		logger.Warn("Failed to add job", slog.String("project_id", projectID), slog.String("job", req.Job), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// removeJob godoc
// @Summary Remove a job from scope
// @Tags wbs
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   job query string true "Job ID"
// @Success 204
// @Failure 404 {object} map[string]string "Job not in scope"
// @Router /projects/{projectID}/wbs/jobs [delete]
func (h *wbsHandler) removeJob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")
	job := c.Query("job")

	if err := h.wbsService.Remove(c.Request.Context(), projectID, job); err != nil {
		logger.Warn("Failed to remove job", slog.String("project_id", projectID), slog.String("job", job), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// jobExists godoc
// @Summary Check whether a job is in scope
// @Tags wbs
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   job query string true "Job ID"
// @Success 200 {object} dto.JobExistsResponse
// @Failure 500 {object} map[string]string "Failed to check job"
// @Router /projects/{projectID}/wbs/jobs/exists [get]
func (h *wbsHandler) jobExists(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")
	job := c.Query("job")

	exists, err := h.wbsService.Exists(c.Request.Context(), projectID, job)
	if err != nil {
		logger.Error("Failed to check job", slog.String("project_id", projectID), slog.String("job", job), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.JobExistsResponse{Job: job, Exists: exists})
}
