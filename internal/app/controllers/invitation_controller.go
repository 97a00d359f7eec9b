package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/services"
	"github.com/dromero/aulasync/internal/middleware"
)

// InvitationController handles invitation related operations
type InvitationController struct {
	invitationService *services.InvitationService
	logger            zerolog.Logger
}

// NewInvitationController creates a new InvitationController
func NewInvitationController(invitationService *services.InvitationService, logger zerolog.Logger) *InvitationController {
	return &InvitationController{
		invitationService: invitationService,
		logger:            logger,
	}
}

// InviteStudent handles inviting a student to a class
// @Summary Invite a student to a class
// @Description Creates a pending invitation for a student and notifies them. Inviting a current member or re-inviting with a pending invitation outstanding is a conflict.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.CreateInvitationRequest true "Student to invite"
// @Success 201 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or target is not a student"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Class or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already a member or already invited"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/invitations [post]
func (c *InvitationController) InviteStudent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid invitation request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	invitation, err := c.invitationService.Invite(ctx.Request.Context(), classID, userID, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: invitation})
}

// ListClassInvitations handles listing the invitations issued for a class
// @Summary List class invitations
// @Description Lists the invitations issued for a class. Only the owning teacher may list them.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationListResponse} "Invitations retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/invitations [get]
func (c *InvitationController) ListClassInvitations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "id", "class ID")
	if !ok {
		return
	}

	invitations, err := c.invitationService.ListForClass(ctx.Request.Context(), classID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: invitations})
}

// ListMyInvitations handles listing the caller's invitations
// @Summary List own invitations
// @Description Lists the authenticated student's invitations, optionally filtered by status
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (PENDING, ACCEPTED, REJECTED)"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationListResponse} "Invitations retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid status filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invitations [get]
func (c *InvitationController) ListMyInvitations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var status *models.InvitationStatus
	if statusStr := ctx.Query("status"); statusStr != "" {
		s := models.InvitationStatus(statusStr)
		if !s.IsValid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid invitation status")
			errorDetail = errorDetail.WithDetails("Status must be PENDING, ACCEPTED or REJECTED")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		status = &s
	}

	invitations, err := c.invitationService.ListForStudent(ctx.Request.Context(), userID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: invitations})
}

// AcceptInvitation handles accepting an invitation
// @Summary Accept an invitation
// @Description Accepts a pending invitation and enrolls the student in the class
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation accepted"
// @Failure 400 {object} dto.ErrorResponse "Invalid invitation ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Invitation belongs to a different student"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 409 {object} dto.ErrorResponse "Invitation already resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invitations/{id}/accept [post]
func (c *InvitationController) AcceptInvitation(ctx *gin.Context) {
	c.respond(ctx, true)
}

// RejectInvitation handles rejecting an invitation
// @Summary Reject an invitation
// @Description Rejects a pending invitation without enrolling the student
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid invitation ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Invitation belongs to a different student"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 409 {object} dto.ErrorResponse "Invitation already resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invitations/{id}/reject [post]
func (c *InvitationController) RejectInvitation(ctx *gin.Context) {
	c.respond(ctx, false)
}

func (c *InvitationController) respond(ctx *gin.Context, accept bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	invitationID, ok := parseIDParam(ctx, "id", "invitation ID")
	if !ok {
		return
	}

	invitation, err := c.invitationService.Respond(ctx.Request.Context(), invitationID, userID, accept)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: invitation})
}
