package dto

import (
	"time"

	"github.com/dromero/aulasync/internal/app/models"
)

// CreatePostRequest represents a request to publish a post in a class feed.
// DueDate is only meaningful for TASK posts; announcements may carry one but
// it has no behavioral effect.
type CreatePostRequest struct {
	Kind    models.PostKind `form:"kind" json:"kind" binding:"required,oneof=ANNOUNCEMENT TASK"`
	Title   *string         `form:"title" json:"title,omitempty"`
	Body    string          `form:"body" json:"body" binding:"required"`
	DueDate *time.Time      `form:"dueDate" json:"dueDate,omitempty" time_format:"2006-01-02"`
}

// UpdatePostRequest represents a request to edit a post. Nil fields are
// left unchanged.
type UpdatePostRequest struct {
	Title   *string    `json:"title,omitempty"`
	Body    *string    `json:"body,omitempty"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// PostFilterRequest represents feed filtering parameters
type PostFilterRequest struct {
	Kind     *models.PostKind `form:"kind" binding:"omitempty,oneof=ANNOUNCEMENT TASK"`
	Page     int              `form:"page,default=1"`
	PageSize int              `form:"pageSize,default=10"`
}

// PostResponse represents a class feed item
type PostResponse struct {
	ID         int64         `json:"id"`
	ClassID    int64         `json:"classId"`
	AuthorID   int64         `json:"authorId"`
	AuthorName string        `json:"authorName,omitempty"`
	Kind       string        `json:"kind"`
	Title      *string       `json:"title,omitempty"`
	Body       string        `json:"body"`
	DueDate    *time.Time    `json:"dueDate,omitempty"`
	Attachment *FileResponse `json:"attachment,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// PostListResponse represents a paginated feed
type PostListResponse struct {
	Posts          []PostResponse `json:"posts"`
	PaginationInfo PaginationInfo `json:"pagination"`
}
