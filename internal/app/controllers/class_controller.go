package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/services"
	"github.com/dromero/aulasync/internal/middleware"
	"github.com/dromero/aulasync/internal/pkg/helpers"
)

// ClassController handles class and roster related operations
type ClassController struct {
	classService *services.ClassService
	logger       zerolog.Logger
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService, logger zerolog.Logger) *ClassController {
	return &ClassController{
		classService: classService,
		logger:       logger,
	}
}

// CreateClass handles class creation
// @Summary Create a class
// @Description Creates a class owned by the authenticated teacher with a freshly generated join code
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=dto.ClassResponse} "Class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a teacher"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create class request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.CreateClass(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: class})
}

// ListClasses handles listing the caller's classes
// @Summary List own classes
// @Description Lists owned classes for a teacher or enrolled classes for a student, paginated
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.ClassListResponse} "Classes retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	classes, err := c.classService.ListClasses(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: classes})
}

// GetClass handles retrieving a class
// @Summary Get class by ID
// @Description Retrieves a class. The join code is only included for the owning teacher.
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Class retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is neither owner nor member"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	class, err := c.classService.GetClass(ctx.Request.Context(), classID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: class})
}

// UpdateClass handles renaming a class
// @Summary Rename a class
// @Description Renames a class. Only the owning teacher may rename.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "New class name"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Class updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid update class request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.UpdateClass(ctx.Request.Context(), classID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: class})
}

// DeleteClass handles deleting a class
// @Summary Delete a class
// @Description Deletes a class together with its posts, submissions and invitations
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 204 "Class deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	if err := c.classService.DeleteClass(ctx.Request.Context(), classID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, nil)
}

// JoinClass handles joining a class by code
// @Summary Join a class by code
// @Description Enrolls the authenticated student in the class matching the join code
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JoinClassRequest true "Join code"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Joined class"
// @Failure 400 {object} dto.ErrorResponse "Malformed join code"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 404 {object} dto.ErrorResponse "No class with that join code"
// @Failure 409 {object} dto.ErrorResponse "Already a member of the class"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/join [post]
func (c *ClassController) JoinClass(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.JoinClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid join class request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.JoinByCode(ctx.Request.Context(), userID, req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: class})
}

// GetRoster handles retrieving a class roster
// @Summary Get class roster
// @Description Retrieves the members of a class, visible to the owning teacher and enrolled students
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.RosterResponse} "Roster retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is neither owner nor member"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/members [get]
func (c *ClassController) GetRoster(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	roster, err := c.classService.GetRoster(ctx.Request.Context(), classID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: roster})
}

// RemoveMember handles removing a student from a class
// @Summary Remove a student from a class
// @Description Removes a student from the roster. Removing a student who is not a member succeeds silently.
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param studentId path int true "Student user ID"
// @Success 204 "Student removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/members/{studentId} [delete]
func (c *ClassController) RemoveMember(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	studentID, ok := parseIDParam(ctx, "studentId", "student ID")
	if !ok {
		return
	}

	if err := c.classService.RemoveMember(ctx.Request.Context(), classID, userID, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, nil)
}

// LeaveClass handles a student leaving a class
// @Summary Leave a class
// @Description Removes the authenticated student from the roster. Leaving a class the student is not in succeeds silently.
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 204 "Left class"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/members [delete]
func (c *ClassController) LeaveClass(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	if err := c.classService.LeaveClass(ctx.Request.Context(), classID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, nil)
}
