package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
)

// FileRepository handles database operations for stored attachments
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// GetByID retrieves a file by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := `
		SELECT id, file_name, file_path, file_url, file_size, file_type, resource_type, uploaded_by, created_at
		FROM files
		WHERE id = $1
	`

	var file models.File
	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.FileName,
		&file.FilePath,
		&file.FileURL,
		&file.FileSize,
		&file.FileType,
		&file.ResourceType,
		&file.UploadedBy,
		&file.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting file: %w", err)
	}

	return &file, nil
}

// Create creates a new file record
func (r *FileRepository) Create(ctx context.Context, file *models.File) (int64, error) {
	query := `
		INSERT INTO files (file_name, file_path, file_url, file_size, file_type, resource_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		file.FileName,
		file.FilePath,
		file.FileURL,
		file.FileSize,
		file.FileType,
		file.ResourceType,
		file.UploadedBy,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating file: %w", err)
	}

	return id, nil
}

// Delete deletes a file record
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM files WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
