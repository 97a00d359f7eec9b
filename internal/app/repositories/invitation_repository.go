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
	"github.com/dromero/aulasync/internal/pkg/dberrors"
	"github.com/dromero/aulasync/internal/pkg/logger"
)

// InvitationRepository handles invitation database operations
type InvitationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new pending invitation. Uniqueness is enforced by a
// partial index over PENDING rows only, so a resolved invitation never
// blocks a re-invite.
func (r *InvitationRepository) Create(ctx context.Context, q Querier, invitation *models.Invitation) (int64, error) {
	sql, args, err := r.sb.Insert("invitations").
		Columns("class_id", "student_id", "status").
		Values(invitation.ClassID, invitation.StudentID, models.InvitationPending).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create invitation SQL")
		return 0, fmt.Errorf("failed to build create invitation query: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "invitations_class_id_student_id_key") {
			logger.Warn().Int64("classID", invitation.ClassID).Int64("studentID", invitation.StudentID).
				Msg("Attempted to create duplicate invitation")
			return 0, apperrors.ErrInvitationExists
		}
		logger.Error().Err(err).Int64("classID", invitation.ClassID).Msg("Error executing create invitation query")
		return 0, fmt.Errorf("error creating invitation: %w", err)
	}

	return id, nil
}

// GetByID retrieves an invitation by ID, including its class
func (r *InvitationRepository) GetByID(ctx context.Context, id int64) (*models.Invitation, error) {
	query := `
		SELECT i.id, i.class_id, i.student_id, i.status, i.created_at, i.updated_at,
			c.id, c.name, c.teacher_id, c.join_code, c.student_count, c.created_at, c.updated_at
		FROM invitations i
		JOIN classes c ON c.id = i.class_id
		WHERE i.id = $1`

	invitation := &models.Invitation{Class: &models.Class{}}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&invitation.ID, &invitation.ClassID, &invitation.StudentID, &invitation.Status,
		&invitation.CreatedAt, &invitation.UpdatedAt,
		&invitation.Class.ID, &invitation.Class.Name, &invitation.Class.TeacherID,
		&invitation.Class.JoinCode, &invitation.Class.StudentCount,
		&invitation.Class.CreatedAt, &invitation.Class.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error retrieving invitation: %w", err)
	}

	return invitation, nil
}

// GetByStudent retrieves a student's invitations, optionally filtered by status
func (r *InvitationRepository) GetByStudent(ctx context.Context, studentID int64, status *models.InvitationStatus) ([]*models.Invitation, error) {
	builder := r.sb.Select(
		"i.id", "i.class_id", "i.student_id", "i.status", "i.created_at", "i.updated_at",
		"c.id", "c.name", "c.teacher_id", "c.join_code", "c.student_count", "c.created_at", "c.updated_at").
		From("invitations i").
		Join("classes c ON c.id = i.class_id").
		Where(squirrel.Eq{"i.student_id": studentID}).
		OrderBy("i.created_at DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"i.status": *status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get invitations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		invitation := &models.Invitation{Class: &models.Class{}}
		err := rows.Scan(
			&invitation.ID, &invitation.ClassID, &invitation.StudentID, &invitation.Status,
			&invitation.CreatedAt, &invitation.UpdatedAt,
			&invitation.Class.ID, &invitation.Class.Name, &invitation.Class.TeacherID,
			&invitation.Class.JoinCode, &invitation.Class.StudentCount,
			&invitation.Class.CreatedAt, &invitation.Class.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning invitation row: %w", err)
		}
		invitations = append(invitations, invitation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitation rows: %w", err)
	}

	if invitations == nil {
		invitations = []*models.Invitation{}
	}

	return invitations, nil
}

// GetByClass retrieves all invitations issued for a class, with student info
func (r *InvitationRepository) GetByClass(ctx context.Context, classID int64) ([]*models.Invitation, error) {
	query := `
		SELECT i.id, i.class_id, i.student_id, i.status, i.created_at, i.updated_at,
			u.id, u.email, u.first_name, u.last_name
		FROM invitations i
		JOIN users u ON u.id = i.student_id
		WHERE i.class_id = $1
		ORDER BY i.created_at DESC`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing class invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		invitation := &models.Invitation{Student: &models.User{}}
		err := rows.Scan(
			&invitation.ID, &invitation.ClassID, &invitation.StudentID, &invitation.Status,
			&invitation.CreatedAt, &invitation.UpdatedAt,
			&invitation.Student.ID, &invitation.Student.Email,
			&invitation.Student.FirstName, &invitation.Student.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning invitation row: %w", err)
		}
		invitations = append(invitations, invitation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitation rows: %w", err)
	}

	if invitations == nil {
		invitations = []*models.Invitation{}
	}

	return invitations, nil
}

// UpdateStatusIfPending atomically resolves a pending invitation. It returns
// false when the invitation was already resolved, so two concurrent accepts
// cannot both win.
func (r *InvitationRepository) UpdateStatusIfPending(ctx context.Context, q Querier, id int64, status models.InvitationStatus) (bool, error) {
	sql, args, err := r.sb.Update("invitations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": models.InvitationPending}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("failed to build update invitation status query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("invitationID", id).Msg("Error executing update invitation status query")
		return false, fmt.Errorf("error updating invitation status: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}
