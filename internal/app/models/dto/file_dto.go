package dto

// FileResponse represents the response for a stored attachment
type FileResponse struct {
	ID           int64  `json:"id" example:"123"`                                 // Unique identifier for the file
	FileName     string `json:"fileName" example:"homework.pdf"`                  // Name of the file
	FileURL      string `json:"fileUrl" example:"http://example.com/uploads/123"` // URL to access the file
	FileSize     int64  `json:"fileSize" example:"1048576"`                       // Size of the file in bytes
	FileType     string `json:"fileType" example:"application/pdf"`               // MIME type of the file
	ResourceType string `json:"resourceType" example:"POST_ATTACHMENT"`           // Type of resource this file is attached to
	CreatedAt    string `json:"createdAt" example:"2025-01-15T10:00:00Z"`         // Timestamp when the file was created
}
