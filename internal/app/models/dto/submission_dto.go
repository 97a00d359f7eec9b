package dto

import "time"

// CreateSubmissionRequest represents a student submitting work for a task
type CreateSubmissionRequest struct {
	Comment string `form:"comment" json:"comment"`
}

// GradeSubmissionRequest represents a teacher grading a submission
type GradeSubmissionRequest struct {
	Score    float64 `json:"score" binding:"min=0,max=10"`
	Feedback *string `json:"feedback,omitempty"`
}

// SubmissionResponse represents submission information
type SubmissionResponse struct {
	ID          int64         `json:"id"`
	PostID      int64         `json:"postId"`
	StudentID   int64         `json:"studentId"`
	StudentName string        `json:"studentName,omitempty"`
	Comment     string        `json:"comment"`
	Attachment  *FileResponse `json:"attachment,omitempty"`
	Score       *float64      `json:"score,omitempty"`
	Feedback    *string       `json:"feedback,omitempty"`
	SubmittedAt time.Time     `json:"submittedAt"`
}

// SubmissionListResponse represents submissions for a task
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}
