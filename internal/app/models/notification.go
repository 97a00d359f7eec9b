package models

import "time"

// Notification represents an immutable per-student inbox entry.
// ReferenceID points back to the originating entity (post, submission or
// invitation) for client-side deep-linking.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"recipientId" db:"recipient_id"`
	Type        NotificationType `json:"type" db:"type"`
	Content     string           `json:"content" db:"content"`
	ReferenceID *int64           `json:"referenceId,omitempty" db:"reference_id"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}
