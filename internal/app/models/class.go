package models

import "time"

// Class represents a teacher-owned group with a roster of students
type Class struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	TeacherID    int64     `json:"teacherId" db:"teacher_id"`
	JoinCode     string    `json:"joinCode" db:"join_code"`
	StudentCount int       `json:"studentCount" db:"student_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Teacher *User   `json:"teacher,omitempty"`
	Roster  []*User `json:"roster,omitempty"`
}

// ClassMember represents a student enrolled in a class
type ClassMember struct {
	ID        int64     `json:"id" db:"id"`
	ClassID   int64     `json:"classId" db:"class_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	JoinedAt  time.Time `json:"joinedAt" db:"joined_at"`

	// Related entities
	Student *User `json:"student,omitempty"`
}
