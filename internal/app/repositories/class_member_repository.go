package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/pkg/logger"
)

// ClassMemberRepository handles class roster database operations
type ClassMemberRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClassMemberRepository creates a new ClassMemberRepository
func NewClassMemberRepository(db *pgxpool.Pool) *ClassMemberRepository {
	return &ClassMemberRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add enrolls a student in a class. It returns false without error when the
// student is already on the roster, so callers can keep student_count exact.
// The duplicate case must not raise a unique violation: inside a transaction
// that would abort every later statement, so the insert uses ON CONFLICT
// DO NOTHING and reports whether a row actually went in.
func (r *ClassMemberRepository) Add(ctx context.Context, q Querier, classID, studentID int64) (bool, error) {
	sql, args, err := r.sb.Insert("class_members").
		Columns("class_id", "student_id").
		Values(classID, studentID).
		Suffix("ON CONFLICT (class_id, student_id) DO NOTHING").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building add class member SQL")
		return false, fmt.Errorf("failed to build add member query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Int64("studentID", studentID).Msg("Error executing add member query")
		return false, fmt.Errorf("error adding class member: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// Remove takes a student off the roster. It returns false when the student
// was not a member, which callers treat as an idempotent no-op.
func (r *ClassMemberRepository) Remove(ctx context.Context, q Querier, classID, studentID int64) (bool, error) {
	sql, args, err := r.sb.Delete("class_members").
		Where(squirrel.Eq{"class_id": classID, "student_id": studentID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("failed to build remove member query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Int64("studentID", studentID).Msg("Error executing remove member query")
		return false, fmt.Errorf("error removing class member: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// IsMember checks whether a student is on a class roster
func (r *ClassMemberRepository) IsMember(ctx context.Context, classID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM class_members WHERE class_id = $1 AND student_id = $2)`,
		classID, studentID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking class membership: %w", err)
	}

	return exists, nil
}

// GetRoster retrieves all members of a class with their student profiles,
// ordered by join time
func (r *ClassMemberRepository) GetRoster(ctx context.Context, classID int64) ([]*models.ClassMember, error) {
	query := `
		SELECT cm.id, cm.class_id, cm.student_id, cm.joined_at,
			u.id, u.email, u.first_name, u.last_name
		FROM class_members cm
		JOIN users u ON u.id = cm.student_id
		WHERE cm.class_id = $1
		ORDER BY cm.joined_at`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving class roster: %w", err)
	}
	defer rows.Close()

	var members []*models.ClassMember
	for rows.Next() {
		member := &models.ClassMember{Student: &models.User{}}
		err := rows.Scan(
			&member.ID, &member.ClassID, &member.StudentID, &member.JoinedAt,
			&member.Student.ID, &member.Student.Email, &member.Student.FirstName, &member.Student.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}

	if members == nil {
		members = []*models.ClassMember{}
	}

	return members, nil
}

// GetMemberIDs retrieves the user IDs of all students on a class roster
func (r *ClassMemberRepository) GetMemberIDs(ctx context.Context, classID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("student_id").
		From("class_members").
		Where(squirrel.Eq{"class_id": classID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get member IDs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving member IDs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning member ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member ID rows: %w", err)
	}

	return ids, nil
}
