package dto

import "time"

// CreateInvitationRequest represents a teacher inviting a student to a class
type CreateInvitationRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
}

// InvitationResponse represents invitation information
type InvitationResponse struct {
	ID        int64     `json:"id"`
	ClassID   int64     `json:"classId"`
	ClassName string    `json:"className,omitempty"`
	StudentID int64     `json:"studentId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// InvitationListResponse represents a list of invitations
type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}
