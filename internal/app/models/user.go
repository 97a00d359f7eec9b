package models

import (
	"time"
)

// User defines the shared account model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                    // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"ana@school.edu"`                 // User's email address
	Password    string     `json:"-" db:"password"`                                           // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"Ana"`                   // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Romero"`                  // User's last name
	Role        RoleType   `json:"role" db:"role" example:"STUDENT"`                          // User's role (TEACHER or STUDENT)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                    // Whether the user account is active
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                  // Timestamp of the last login (nullable)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`  // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2025-01-02T15:30:00Z"`  // Timestamp when the user was last updated
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Teacher defines the teacher profile based on the 'teachers' table
type Teacher struct {
	ID         int64  `json:"id" db:"id"`
	UserID     int64  `json:"userId" db:"user_id"`
	Specialty  string `json:"specialty" db:"specialty"`
	Department string `json:"department" db:"department"`
	User       *User  `json:"user,omitempty"` // Relation, no db tag
}

// Student defines the student profile based on the 'students' table
type Student struct {
	ID               int64   `json:"id" db:"id"`
	UserID           int64   `json:"userId" db:"user_id"`
	EnrollmentNumber *string `json:"enrollmentNumber,omitempty" db:"enrollment_number"` // Pointer for potential NULL
	User             *User   `json:"user,omitempty"`                                    // Relation, no db tag
}
