package dto

import "github.com/dromero/aulasync/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a user registration request.
// Specialty/Department apply to TEACHER registrations, EnrollmentNumber to STUDENT ones.
type RegisterRequest struct {
	Email            string          `json:"email" binding:"required,email"`
	Password         string          `json:"password" binding:"required,min=8"`
	FirstName        string          `json:"firstName" binding:"required"`
	LastName         string          `json:"lastName" binding:"required"`
	Role             models.RoleType `json:"role" binding:"required,oneof=TEACHER STUDENT"`
	Specialty        string          `json:"specialty,omitempty"`
	Department       string          `json:"department,omitempty"`
	EnrollmentNumber *string         `json:"enrollmentNumber,omitempty"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Role             string  `json:"role"`
	Specialty        string  `json:"specialty,omitempty"`
	Department       string  `json:"department,omitempty"`
	EnrollmentNumber *string `json:"enrollmentNumber,omitempty"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
