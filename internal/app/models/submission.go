package models

import "time"

// Submission represents a student's response to a task.
// Score and Feedback stay NULL until the owning teacher grades it.
type Submission struct {
	ID               int64     `json:"id" db:"id"`
	PostID           int64     `json:"postId" db:"post_id"`
	StudentID        int64     `json:"studentId" db:"student_id"`
	Comment          string    `json:"comment" db:"comment"`
	AttachmentFileID *int64    `json:"attachmentFileId,omitempty" db:"attachment_file_id"`
	Score            *float64  `json:"score,omitempty" db:"score"`
	Feedback         *string   `json:"feedback,omitempty" db:"feedback"`
	SubmittedAt      time.Time `json:"submittedAt" db:"submitted_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Student    *User `json:"student,omitempty"`
	Post       *Post `json:"post,omitempty"`
	Attachment *File `json:"attachment,omitempty"`
}

// IsGraded reports whether a score has been assigned.
func (s *Submission) IsGraded() bool {
	return s.Score != nil
}
