package dto

import "time"

// CreateClassRequest represents a request to create a class
type CreateClassRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateClassRequest represents a request to rename a class
type UpdateClassRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// JoinClassRequest represents a student joining a class by code
type JoinClassRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// ClassResponse represents class information
type ClassResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	TeacherID    int64     `json:"teacherId"`
	TeacherName  string    `json:"teacherName,omitempty"`
	JoinCode     string    `json:"joinCode,omitempty"` // only exposed to the owning teacher
	StudentCount int       `json:"studentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ClassListResponse represents a paginated list of classes
type ClassListResponse struct {
	Classes        []ClassResponse `json:"classes"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// MemberResponse represents a member of a class roster
type MemberResponse struct {
	StudentID        int64     `json:"studentId"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	EnrollmentNumber *string   `json:"enrollmentNumber,omitempty"`
	JoinedAt         time.Time `json:"joinedAt"`
}

// RosterResponse represents the full roster of a class
type RosterResponse struct {
	ClassID int64            `json:"classId"`
	Members []MemberResponse `json:"members"`
}
