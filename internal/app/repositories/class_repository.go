package repositories

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

// ClassRepository handles class database operations
type ClassRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new class. The caller is responsible for retrying on a
// join code collision, which surfaces as a unique violation on
// classes_join_code_key.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	sql, args, err := r.sb.Insert("classes").
		Columns("name", "teacher_id", "join_code").
		Values(class.Name, class.TeacherID, class.JoinCode).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create class SQL")
		return 0, fmt.Errorf("failed to build create class query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating class: %w", err)
	}

	return id, nil
}

// GetByID retrieves a class by ID, including the owning teacher
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `
		SELECT c.id, c.name, c.teacher_id, c.join_code, c.student_count, c.created_at, c.updated_at,
			u.id, u.email, u.first_name, u.last_name
		FROM classes c
		JOIN users u ON u.id = c.teacher_id
		WHERE c.id = $1`

	class := &models.Class{Teacher: &models.User{}}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID, &class.Name, &class.TeacherID, &class.JoinCode, &class.StudentCount,
		&class.CreatedAt, &class.UpdatedAt,
		&class.Teacher.ID, &class.Teacher.Email, &class.Teacher.FirstName, &class.Teacher.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return class, nil
}

// GetByJoinCode retrieves a class by its join code
func (r *ClassRepository) GetByJoinCode(ctx context.Context, code string) (*models.Class, error) {
	sql, args, err := r.sb.Select("id", "name", "teacher_id", "join_code", "student_count", "created_at", "updated_at").
		From("classes").
		Where(squirrel.Eq{"join_code": code}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get class by code query: %w", err)
	}

	class := &models.Class{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&class.ID, &class.Name, &class.TeacherID, &class.JoinCode, &class.StudentCount,
		&class.CreatedAt, &class.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassCodeNotFound
		}
		return nil, fmt.Errorf("error retrieving class by code: %w", err)
	}

	return class, nil
}

// GetByTeacher retrieves classes owned by a teacher with pagination
func (r *ClassRepository) GetByTeacher(ctx context.Context, teacherID int64, page, pageSize int) ([]*models.Class, int64, error) {
	offset := (page - 1) * pageSize
	query := `
		SELECT id, name, teacher_id, join_code, student_count, created_at, updated_at,
			COUNT(*) OVER() AS total_count
		FROM classes
		WHERE teacher_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, teacherID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing classes by teacher: %w", err)
	}
	defer rows.Close()

	return scanClassRows(rows)
}

// GetByStudent retrieves classes a student is enrolled in with pagination
func (r *ClassRepository) GetByStudent(ctx context.Context, studentID int64, page, pageSize int) ([]*models.Class, int64, error) {
	offset := (page - 1) * pageSize
	query := `
		SELECT c.id, c.name, c.teacher_id, c.join_code, c.student_count, c.created_at, c.updated_at,
			COUNT(*) OVER() AS total_count
		FROM classes c
		JOIN class_members cm ON cm.class_id = c.id
		WHERE cm.student_id = $1
		ORDER BY cm.joined_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, studentID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing classes by student: %w", err)
	}
	defer rows.Close()

	return scanClassRows(rows)
}

func scanClassRows(rows pgx.Rows) ([]*models.Class, int64, error) {
	var classes []*models.Class
	var total int64

	for rows.Next() {
		class := &models.Class{}
		err := rows.Scan(
			&class.ID, &class.Name, &class.TeacherID, &class.JoinCode, &class.StudentCount,
			&class.CreatedAt, &class.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating class rows: %w", err)
	}

	if classes == nil {
		classes = []*models.Class{}
	}

	return classes, total, nil
}

// UpdateName renames a class
func (r *ClassRepository) UpdateName(ctx context.Context, classID int64, name string) error {
	sql, args, err := r.sb.Update("classes").
		Set("name", name).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": classID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// IncrementStudentCount adjusts the derived student_count by delta. It runs
// on a Querier so membership changes and the counter stay in one transaction.
func (r *ClassRepository) IncrementStudentCount(ctx context.Context, q Querier, classID int64, delta int) error {
	sql, args, err := r.sb.Update("classes").
		Set("student_count", squirrel.Expr("student_count + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": classID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build increment student count query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student count: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// Delete removes a class. Memberships, posts, invitations and their
// notifications go with it via ON DELETE CASCADE.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", id).Msg("Error executing delete class query")
		return fmt.Errorf("error deleting class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}
