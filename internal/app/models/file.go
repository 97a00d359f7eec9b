package models

import "time"

// FileType represents the kind of resource a stored file is attached to
type FileType string

const (
	FileTypePostAttachment       FileType = "POST_ATTACHMENT"
	FileTypeSubmissionAttachment FileType = "SUBMISSION_ATTACHMENT"
)

// File represents a stored attachment in the system
type File struct {
	ID           int64     `json:"id" db:"id"`
	FileName     string    `json:"fileName" db:"file_name"`
	FilePath     string    `json:"filePath" db:"file_path"`
	FileURL      string    `json:"fileUrl" db:"file_url"`
	FileSize     int64     `json:"fileSize" db:"file_size"`
	FileType     string    `json:"fileType" db:"file_type"` // MIME type
	ResourceType FileType  `json:"resourceType" db:"resource_type"`
	UploadedBy   int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
