package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/services"
	"github.com/dromero/aulasync/internal/middleware"
)

// ExportController handles grade report downloads
type ExportController struct {
	exportService *services.ExportService
	logger        zerolog.Logger
}

// NewExportController creates a new ExportController
func NewExportController(exportService *services.ExportService, logger zerolog.Logger) *ExportController {
	return &ExportController{
		exportService: exportService,
		logger:        logger,
	}
}

// ExportClassReport handles downloading the full class report
// @Summary Export class report
// @Description Downloads the tab-delimited class report: class info, a block per task and a per-student summary. Owner only.
// @Tags exports
// @Produce text/csv
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {file} file "Class report"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/export [get]
func (c *ExportController) ExportClassReport(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	// Render to a buffer first so errors can still produce a JSON response
	var buf bytes.Buffer
	if err := c.exportService.ExportClassCSV(ctx.Request.Context(), classID, userID, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("class_%d_report.csv", classID)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportTaskReport handles downloading a single-task report
// @Summary Export task report
// @Description Downloads the flat tab-delimited report for one task: one row per enrolled student. Owner only.
// @Tags exports
// @Produce text/csv
// @Security BearerAuth
// @Param id path int true "Task post ID"
// @Success 200 {file} file "Task report"
// @Failure 400 {object} dto.ErrorResponse "Post is not a task"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/export [get]
func (c *ExportController) ExportTaskReport(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parseIDParam(ctx, "id", "post ID")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := c.exportService.ExportTaskCSV(ctx.Request.Context(), postID, userID, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("task_%d_report.csv", postID)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
