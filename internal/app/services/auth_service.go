package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/repositories"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
	"github.com/dromero/aulasync/internal/pkg/auth"
	"github.com/dromero/aulasync/internal/pkg/validation"
)

// Define custom error types for auth service
var (
	ErrInvalidEmail            = errors.New("invalid email format")
	ErrInvalidPassword         = errors.New("invalid password format")
	ErrInvalidEnrollmentNumber = errors.New("invalid enrollment number format")
	ErrAuthValidation          = errors.New("auth validation failed")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrAuthValidation)
	}

	emailRegex := regexp.MustCompile(validation.EmailPattern)
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrAuthValidation)
	}

	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", ErrInvalidPassword)
	}

	hasLetter := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", ErrInvalidPassword)
	}

	hasDigit := false
	for _, char := range password {
		if unicode.IsDigit(char) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", ErrInvalidPassword)
	}

	return nil
}

// validateEnrollmentNumber validates a student enrollment number
func (s *AuthService) validateEnrollmentNumber(enrollmentNumber string) error {
	if enrollmentNumber == "" {
		return fmt.Errorf("%w: enrollment number cannot be empty", ErrAuthValidation)
	}

	enrollmentRegex := regexp.MustCompile(validation.EnrollmentNumberPattern)
	if !enrollmentRegex.MatchString(enrollmentNumber) {
		return ErrInvalidEnrollmentNumber
	}

	return nil
}

// validateToken validates a token string
func (s *AuthService) validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.ErrTokenInvalid
	}

	return nil
}

// Register registers a new teacher or student account
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	// Validate email
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}

	// Validate password
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	// Validate enrollment number when a student supplies one
	if req.Role == models.RoleStudent && req.EnrollmentNumber != nil {
		if err := s.validateEnrollmentNumber(*req.EnrollmentNumber); err != nil {
			return nil, err
		}

		exists, err := s.userRepo.EnrollmentNumberExists(ctx, *req.EnrollmentNumber)
		if err != nil {
			return nil, fmt.Errorf("error checking if enrollment number exists: %w", err)
		}
		if exists {
			return nil, apperrors.ErrEnrollmentNumberExists
		}
	}

	// Check if email already exists
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// Create user
	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}
	user.ID = userID

	// Create the role profile
	switch req.Role {
	case models.RoleTeacher:
		teacher := &models.Teacher{
			UserID:     userID,
			Specialty:  req.Specialty,
			Department: req.Department,
		}
		if err := s.userRepo.CreateTeacher(ctx, teacher); err != nil {
			return nil, fmt.Errorf("teacher creation error: %w", err)
		}
	case models.RoleStudent:
		student := &models.Student{
			UserID:           userID,
			EnrollmentNumber: req.EnrollmentNumber,
		}
		if err := s.userRepo.CreateStudent(ctx, student); err != nil {
			return nil, fmt.Errorf("student creation error: %w", err)
		}
	}

	s.logger.Info().Int64("userID", userID).Str("role", string(req.Role)).Msg("Account registered")

	return s.buildAuthResponse(ctx, user)
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// Validate email
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}

	if req.Password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", ErrAuthValidation)
	}

	// Find user by email. Report invalid credentials either way so login
	// does not leak which emails are registered.
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Password validation
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	return s.buildAuthResponse(ctx, user)
}

// RefreshToken creates a new access token using a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	// Validate refresh token
	if err := s.validateToken(refreshToken); err != nil {
		return nil, err
	}

	// Get token information with additional validation
	userID, expiryDate, isRevoked, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound, apperrors.ErrTokenExpired, apperrors.ErrTokenRevoked) {
			return nil, err
		}
		return nil, fmt.Errorf("token validation error: %w", err)
	}

	// Check expiry date explicitly
	if expiryDate.Before(time.Now()) {
		// Also revoke expired token
		_ = s.tokenRepo.RevokeToken(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	// Check revocation status explicitly
	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}

	// Get user information
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	// Revoke old token (prevents token reuse)
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.buildAuthResponse(ctx, user)
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.validateToken(refreshToken); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			// Logging out with an unknown token is not an error
			return nil
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// GetProfile retrieves the account profile for a user
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}

	return s.buildUserResponse(ctx, user)
}

// Helper functions

// buildUserResponse assembles the user DTO with the role profile attached
func (s *AuthService) buildUserResponse(ctx context.Context, user *models.User) (*dto.UserResponse, error) {
	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}

	switch user.Role {
	case models.RoleTeacher:
		teacher, err := s.userRepo.GetTeacherByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				s.logger.Warn().Int64("userID", user.ID).Msg("Teacher profile missing for teacher account")
			} else {
				return nil, fmt.Errorf("failed to get teacher information: %w", err)
			}
		} else {
			resp.Specialty = teacher.Specialty
			resp.Department = teacher.Department
		}
	case models.RoleStudent:
		student, err := s.userRepo.GetStudentByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				s.logger.Warn().Int64("userID", user.ID).Msg("Student profile missing for student account")
			} else {
				return nil, fmt.Errorf("failed to get student information: %w", err)
			}
		} else {
			resp.EnrollmentNumber = student.EnrollmentNumber
		}
	}

	return resp, nil
}

// buildAuthResponse creates the token-plus-user response
func (s *AuthService) buildAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	// Create access and refresh token pair
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	// Save refresh token to database
	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	userResp, err := s.buildUserResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			RefreshToken:          refreshToken,
			TokenType:             "Bearer",
			ExpiresIn:             expiresIn,
			RefreshTokenExpiresIn: refreshExpiresIn,
		},
		User: *userResp,
	}, nil
}
