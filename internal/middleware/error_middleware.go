package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/dromero/aulasync/internal/app/auth"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/services"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Controllers call it
// for any error coming back from the service layer.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 404 - missing resources
	case apperrors.Is(err, apperrors.ErrUserNotFound,
		apperrors.ErrClassNotFound,
		apperrors.ErrClassCodeNotFound,
		apperrors.ErrInvitationNotFound,
		apperrors.ErrPostNotFound,
		apperrors.ErrSubmissionNotFound,
		apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)

	// 403 - authorization failures
	case apperrors.Is(err, apperrors.ErrPermissionDenied,
		appauth.ErrPermissionDenied,
		appauth.ErrNotTeacher):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)

	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)

	// 409 - conflicts with current state
	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists,
		apperrors.ErrEnrollmentNumberExists,
		apperrors.ErrAlreadyMember,
		apperrors.ErrInvitationExists,
		apperrors.ErrAlreadySubmitted,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err)

	case apperrors.Is(err, apperrors.ErrInvitationResolved, apperrors.ErrInvalidState):
		respondError(c, http.StatusConflict, dto.ErrorCodeInvalidState, err)

	// 401 - authentication failures
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, err)
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked, apperrors.ErrInvalidFormat):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)

	// 400 - requests the service layer rejected
	case apperrors.Is(err, apperrors.ErrBadRequest,
		apperrors.ErrValidationFailed,
		apperrors.ErrNotATask,
		services.ErrInvalidEmail,
		services.ErrInvalidPassword,
		services.ErrInvalidEnrollmentNumber,
		services.ErrAuthValidation):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)

	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

// respondError writes the JSON error envelope, preferring the wrapped
// message so CustomError context reaches the client
func respondError(c *gin.Context, status int, code dto.ErrorCode, err error) {
	errorDetail := dto.NewErrorDetail(code, err.Error())
	c.JSON(status, dto.NewErrorResponse(errorDetail))
}
