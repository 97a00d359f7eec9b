package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/repositories"
	"github.com/dromero/aulasync/internal/app/services"
	"github.com/dromero/aulasync/internal/middleware"
	"github.com/dromero/aulasync/internal/pkg/filestorage"
)

// SubmissionController handles task submission and grading operations
type SubmissionController struct {
	submissionService *services.SubmissionService
	fileStorage       *filestorage.LocalStorage
	fileRepo          *repositories.FileRepository
	logger            zerolog.Logger
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService *services.SubmissionService, fileStorage *filestorage.LocalStorage,
	fileRepo *repositories.FileRepository, logger zerolog.Logger) *SubmissionController {
	return &SubmissionController{
		submissionService: submissionService,
		fileStorage:       fileStorage,
		fileRepo:          fileRepo,
		logger:            logger,
	}
}

// Submit handles a student submitting work for a task
// @Summary Submit work for a task
// @Description Records the authenticated student's submission for a task, with an optional attachment. One submission per student per task.
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task post ID"
// @Param comment formData string false "Submission comment"
// @Param file formData file false "Attachment"
// @Success 201 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission recorded"
// @Failure 400 {object} dto.ErrorResponse "Post is not a task"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Student is not enrolled in the class"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted for this task"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parseIDParam(ctx, "id", "post ID")
	if !ok {
		return
	}

	var req dto.CreateSubmissionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid submission request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var attachmentFileID *int64
	if fileHeader, err := ctx.FormFile("file"); err == nil {
		attachmentFileID, err = storeAttachment(ctx.Request.Context(), c.fileStorage, c.fileRepo,
			fileHeader, "submissions", models.FileTypeSubmissionAttachment, userID)
		if err != nil {
			c.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to store submission attachment")
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	submission, err := c.submissionService.Submit(ctx.Request.Context(), postID, userID, &req, attachmentFileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: submission})
}

// ListForTask handles listing every submission for a task
// @Summary List task submissions
// @Description Lists every submission for a task. Only the teacher owning the class may list them.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionListResponse} "Submissions retrieved"
// @Failure 400 {object} dto.ErrorResponse "Post is not a task"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/submissions [get]
func (c *SubmissionController) ListForTask(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parseIDParam(ctx, "id", "post ID")
	if !ok {
		return
	}

	submissions, err := c.submissionService.ListForTask(ctx.Request.Context(), postID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: submissions})
}

// GetOwnSubmission handles a student retrieving their own submission
// @Summary Get own submission
// @Description Retrieves the authenticated student's submission for a task
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No submission for this task"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/submissions/me [get]
func (c *SubmissionController) GetOwnSubmission(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parseIDParam(ctx, "id", "post ID")
	if !ok {
		return
	}

	submission, err := c.submissionService.GetOwn(ctx.Request.Context(), postID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: submission})
}

// GradeSubmission handles grading a submission
// @Summary Grade a submission
// @Description Assigns a score and optional feedback to a submission and notifies the student. Regrading overwrites the previous score.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param request body dto.GradeSubmissionRequest true "Score and feedback"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission graded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or score out of range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /submissions/{id}/grade [put]
func (c *SubmissionController) GradeSubmission(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	submissionID, ok := parseIDParam(ctx, "id", "submission ID")
	if !ok {
		return
	}

	var req dto.GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid grade request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	submission, err := c.submissionService.Grade(ctx.Request.Context(), submissionID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: submission})
}
