package models

import "time"

// Post represents a class feed item, either an announcement or a task.
// DueDate and AttachmentFileID are modeled on every post; only tasks give
// the due date behavioral meaning.
type Post struct {
	ID               int64      `json:"id" db:"id"`
	ClassID          int64      `json:"classId" db:"class_id"`
	AuthorID         int64      `json:"authorId" db:"author_id"`
	Kind             PostKind   `json:"kind" db:"kind"`
	Title            *string    `json:"title,omitempty" db:"title"`
	Body             string     `json:"body" db:"body"`
	DueDate          *time.Time `json:"dueDate,omitempty" db:"due_date"`
	AttachmentFileID *int64     `json:"attachmentFileId,omitempty" db:"attachment_file_id"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author     *User `json:"author,omitempty"`
	Attachment *File `json:"attachment,omitempty"`
}

// IsTask reports whether the post requires submissions.
func (p *Post) IsTask() bool {
	return p.Kind == PostTask
}
