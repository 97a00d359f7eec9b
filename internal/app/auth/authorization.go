package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/repositories"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
	"github.com/dromero/aulasync/internal/pkg/logger"
)

// Common errors specific to authorization
var (
	ErrNotTeacher       = errors.New("only teachers can perform this action")
	ErrPermissionDenied = errors.New("you don't have permission for this action")
)

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	userRepo  *repositories.UserRepository
	classRepo *repositories.ClassRepository
	postRepo  *repositories.PostRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo *repositories.UserRepository, classRepo *repositories.ClassRepository, postRepo *repositories.PostRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo:  userRepo,
		classRepo: classRepo,
		postRepo:  postRepo,
	}
}

// IsTeacher checks if the user has the teacher role
func (s *AuthorizationService) IsTeacher(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in IsTeacher")
		return false, err
	}
	if user == nil {
		return false, apperrors.ErrUserNotFound
	}
	return user.Role == models.RoleTeacher, nil
}

// ValidateTeacher validates that the user is a teacher or returns an error
func (s *AuthorizationService) ValidateTeacher(ctx context.Context, userID int64) error {
	isTeacher, err := s.IsTeacher(ctx, userID)
	if err != nil {
		return err
	}

	if !isTeacher {
		return ErrNotTeacher
	}

	return nil
}

// ValidateClassOwnership validates that the user is the teacher who owns the
// class. Returns the class so callers don't fetch it twice.
func (s *AuthorizationService) ValidateClassOwnership(ctx context.Context, classID, userID int64) (*models.Class, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return nil, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Int64("classID", classID).Msg("Error getting class during ownership validation")
		return nil, fmt.Errorf("failed to check class ownership: %w", err)
	}

	if class.TeacherID != userID {
		return nil, ErrPermissionDenied
	}

	return class, nil
}

// ValidatePostOwnership validates that the user owns the class the post
// belongs to. Returns the post so callers don't fetch it twice.
func (s *AuthorizationService) ValidatePostOwnership(ctx context.Context, postID, userID int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", postID).Msg("Error getting post during ownership validation")
		return nil, fmt.Errorf("failed to check post ownership: %w", err)
	}

	if _, err := s.ValidateClassOwnership(ctx, post.ClassID, userID); err != nil {
		return nil, err
	}

	return post, nil
}

// GetUserInfo returns user information
func (s *AuthorizationService) GetUserInfo(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in GetUserInfo")
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return user, nil
}
