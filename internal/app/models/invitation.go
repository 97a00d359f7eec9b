package models

import "time"

// Invitation represents a pending offer of class membership to a student
type Invitation struct {
	ID        int64            `json:"id" db:"id"`
	ClassID   int64            `json:"classId" db:"class_id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	Status    InvitationStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`

	// Related entities
	Class   *Class `json:"class,omitempty"`
	Student *User  `json:"student,omitempty"`
}
