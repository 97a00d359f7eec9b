package dto

import "time"

// NotificationResponse represents a notification inbox entry
type NotificationResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	ReferenceID *int64    `json:"referenceId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NotificationListResponse represents a paginated notification feed
type NotificationListResponse struct {
	Notifications  []NotificationResponse `json:"notifications"`
	PaginationInfo PaginationInfo         `json:"pagination"`
}
