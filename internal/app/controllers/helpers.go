package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/repositories"
	"github.com/dromero/aulasync/internal/pkg/filestorage"
)

// currentUserID reads the authenticated user ID that the JWT middleware put
// on the context. Writes the 401 response itself when it is missing.
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}

	userID, ok := value.(int64)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		errorDetail = errorDetail.WithDetails("Invalid user ID format")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return 0, false
	}

	return userID, true
}

// parseIDParam parses a numeric path parameter, writing the 400 response on
// failure
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label)
		errorDetail = errorDetail.WithDetails(label + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// storeAttachment saves an uploaded file under subDir and records it in the
// files table. Returns nil when no file was uploaded.
func storeAttachment(ctx context.Context, storage *filestorage.LocalStorage, fileRepo *repositories.FileRepository,
	fileHeader *multipart.FileHeader, subDir string, resourceType models.FileType, uploaderID int64) (*int64, error) {
	if fileHeader == nil {
		return nil, nil
	}

	path, err := storage.SaveFileWithPath(fileHeader, subDir)
	if err != nil {
		return nil, err
	}

	fileID, err := fileRepo.Create(ctx, &models.File{
		FileName:     fileHeader.Filename,
		FilePath:     storage.GetFullPath(path),
		FileURL:      path,
		FileSize:     fileHeader.Size,
		FileType:     fileHeader.Header.Get("Content-Type"),
		ResourceType: resourceType,
		UploadedBy:   uploaderID,
	})
	if err != nil {
		// The record failed, drop the orphaned file
		_ = storage.DeleteFile(path)
		return nil, err
	}

	return &fileID, nil
}
