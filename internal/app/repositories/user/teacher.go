package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
	"github.com/dromero/aulasync/internal/pkg/logger"
)

// TeacherRepository handles teacher profile database operations
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTeacher creates a new teacher profile
func (r *TeacherRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Insert("teachers").
		Columns("user_id", "specialty", "department").
		Values(teacher.UserID, teacher.Specialty, teacher.Department).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher SQL")
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", teacher.UserID).Msg("Error executing create teacher query")
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

// GetTeacherByUserID retrieves a teacher profile by user ID
func (r *TeacherRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select("id", "user_id", "specialty", "department").
		From("teachers").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher := &models.Teacher{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID, &teacher.UserID, &teacher.Specialty, &teacher.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}
