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

// PostController handles class feed related operations
type PostController struct {
	postService *services.PostService
	fileStorage *filestorage.LocalStorage
	fileRepo    *repositories.FileRepository
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, fileStorage *filestorage.LocalStorage,
	fileRepo *repositories.FileRepository, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		fileStorage: fileStorage,
		fileRepo:    fileRepo,
		logger:      logger,
	}
}

// CreatePost handles publishing a post in a class feed
// @Summary Publish a post
// @Description Publishes an announcement or task in a class feed, with an optional attachment. Publishing a task notifies every enrolled student.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param kind formData string true "Post kind (ANNOUNCEMENT or TASK)"
// @Param title formData string false "Post title"
// @Param body formData string true "Post body"
// @Param dueDate formData string false "Due date for tasks (YYYY-MM-DD)"
// @Param file formData file false "Attachment"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post published"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create post request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// Attachment is optional
	var attachmentFileID *int64
	if fileHeader, err := ctx.FormFile("file"); err == nil {
		attachmentFileID, err = storeAttachment(ctx.Request.Context(), c.fileStorage, c.fileRepo,
			fileHeader, "posts", models.FileTypePostAttachment, userID)
		if err != nil {
			c.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to store post attachment")
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	post, err := c.postService.CreatePost(ctx.Request.Context(), classID, userID, &req, attachmentFileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: post})
}

// GetFeed handles retrieving a class feed
// @Summary Get class feed
// @Description Retrieves a class feed newest first, optionally filtered by kind, paginated
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param kind query string false "Filter by kind (ANNOUNCEMENT or TASK)"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Feed retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is neither owner nor member"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/posts [get]
func (c *PostController) GetFeed(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	var filter dto.PostFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	feed, err := c.postService.GetFeed(ctx.Request.Context(), classID, userID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: feed})
}

// GetPost handles retrieving a single post
// @Summary Get post by ID
// @Description Retrieves a single post, visible to the owning teacher and enrolled students
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is neither owner nor member"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parseIDParam(ctx, "id", "post ID")
	if !ok {
		return
	}

	post, err := c.postService.GetPost(ctx.Request.Context(), postID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: post})
}

// UpdatePost handles editing a post
// @Summary Edit a post
// @Description Edits a post's title, body or due date. Omitted fields are left unchanged.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdatePostRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parseIDParam(ctx, "id", "post ID")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update post request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.UpdatePost(ctx.Request.Context(), postID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: post})
}

// DeletePost handles deleting a post
// @Summary Delete a post
// @Description Deletes a post. Deleting a task also deletes its submissions.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204 "Post deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parseIDParam(ctx, "id", "post ID")
	if !ok {
		return
	}

	if err := c.postService.DeletePost(ctx.Request.Context(), postID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, nil)
}
