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

// SubmissionRepository handles task submission database operations
type SubmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new submission. A second submission for the same task by
// the same student hits the unique constraint and maps to ErrAlreadySubmitted.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) (int64, error) {
	sql, args, err := r.sb.Insert("submissions").
		Columns("post_id", "student_id", "comment", "attachment_file_id").
		Values(submission.PostID, submission.StudentID, submission.Comment, submission.AttachmentFileID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create submission SQL")
		return 0, fmt.Errorf("failed to build create submission query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "submissions_post_id_student_id_key") {
			logger.Warn().Int64("postID", submission.PostID).Int64("studentID", submission.StudentID).
				Msg("Attempted to submit twice for the same task")
			return 0, apperrors.ErrAlreadySubmitted
		}
		logger.Error().Err(err).Int64("postID", submission.PostID).Msg("Error executing create submission query")
		return 0, fmt.Errorf("error creating submission: %w", err)
	}

	return id, nil
}

// GetByID retrieves a submission by ID, including its student
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := `
		SELECT s.id, s.post_id, s.student_id, s.comment, s.attachment_file_id,
			s.score, s.feedback, s.submitted_at, s.updated_at,
			u.id, u.email, u.first_name, u.last_name
		FROM submissions s
		JOIN users u ON u.id = s.student_id
		WHERE s.id = $1`

	submission := &models.Submission{Student: &models.User{}}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&submission.ID, &submission.PostID, &submission.StudentID, &submission.Comment,
		&submission.AttachmentFileID, &submission.Score, &submission.Feedback,
		&submission.SubmittedAt, &submission.UpdatedAt,
		&submission.Student.ID, &submission.Student.Email,
		&submission.Student.FirstName, &submission.Student.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving submission: %w", err)
	}

	return submission, nil
}

// GetByPost retrieves all submissions for a task, including student info
func (r *SubmissionRepository) GetByPost(ctx context.Context, postID int64) ([]*models.Submission, error) {
	query := `
		SELECT s.id, s.post_id, s.student_id, s.comment, s.attachment_file_id,
			s.score, s.feedback, s.submitted_at, s.updated_at,
			u.id, u.email, u.first_name, u.last_name
		FROM submissions s
		JOIN users u ON u.id = s.student_id
		WHERE s.post_id = $1
		ORDER BY s.submitted_at`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissionRows(rows)
}

// GetByPostAndStudent retrieves a student's submission for a task, or
// ErrSubmissionNotFound when none exists
func (r *SubmissionRepository) GetByPostAndStudent(ctx context.Context, postID, studentID int64) (*models.Submission, error) {
	sql, args, err := r.sb.Select("id", "post_id", "student_id", "comment", "attachment_file_id",
		"score", "feedback", "submitted_at", "updated_at").
		From("submissions").
		Where(squirrel.Eq{"post_id": postID, "student_id": studentID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get submission query: %w", err)
	}

	submission := &models.Submission{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&submission.ID, &submission.PostID, &submission.StudentID, &submission.Comment,
		&submission.AttachmentFileID, &submission.Score, &submission.Feedback,
		&submission.SubmittedAt, &submission.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving submission: %w", err)
	}

	return submission, nil
}

// GetByClass retrieves every submission for every task of a class, including
// student info. Used when exporting grades.
func (r *SubmissionRepository) GetByClass(ctx context.Context, classID int64) ([]*models.Submission, error) {
	query := `
		SELECT s.id, s.post_id, s.student_id, s.comment, s.attachment_file_id,
			s.score, s.feedback, s.submitted_at, s.updated_at,
			u.id, u.email, u.first_name, u.last_name
		FROM submissions s
		JOIN posts p ON p.id = s.post_id
		JOIN users u ON u.id = s.student_id
		WHERE p.class_id = $1
		ORDER BY s.post_id, s.submitted_at`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing class submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissionRows(rows)
}

func scanSubmissionRows(rows pgx.Rows) ([]*models.Submission, error) {
	var submissions []*models.Submission
	for rows.Next() {
		submission := &models.Submission{Student: &models.User{}}
		err := rows.Scan(
			&submission.ID, &submission.PostID, &submission.StudentID, &submission.Comment,
			&submission.AttachmentFileID, &submission.Score, &submission.Feedback,
			&submission.SubmittedAt, &submission.UpdatedAt,
			&submission.Student.ID, &submission.Student.Email,
			&submission.Student.FirstName, &submission.Student.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	if submissions == nil {
		submissions = []*models.Submission{}
	}

	return submissions, nil
}

// Grade records a score and optional feedback on a submission
func (r *SubmissionRepository) Grade(ctx context.Context, q Querier, id int64, score float64, feedback *string) error {
	sql, args, err := r.sb.Update("submissions").
		Set("score", score).
		Set("feedback", feedback).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build grade submission query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("submissionID", id).Msg("Error executing grade submission query")
		return fmt.Errorf("error grading submission: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubmissionNotFound
	}

	return nil
}
