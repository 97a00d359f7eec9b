package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/auth"
	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/repositories"
	"github.com/dromero/aulasync/internal/db"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
)

// SubmissionService handles task submissions and grading
type SubmissionService struct {
	submissionRepo *repositories.SubmissionRepository
	postRepo       *repositories.PostRepository
	memberRepo     *repositories.ClassMemberRepository
	userRepo       *repositories.UserRepository
	fileRepo       *repositories.FileRepository
	notifications  *NotificationService
	database       *db.PostgresDB
	authz          *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	submissionRepo *repositories.SubmissionRepository,
	postRepo *repositories.PostRepository,
	memberRepo *repositories.ClassMemberRepository,
	userRepo *repositories.UserRepository,
	fileRepo *repositories.FileRepository,
	notifications *NotificationService,
	database *db.PostgresDB,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		postRepo:       postRepo,
		memberRepo:     memberRepo,
		userRepo:       userRepo,
		fileRepo:       fileRepo,
		notifications:  notifications,
		database:       database,
		authz:          authz,
		logger:         logger,
	}
}

// Submit records a student's work for a task. The post must be a task, the
// student must be on the roster, and one submission per student per task is
// enforced by the database.
func (s *SubmissionService) Submit(ctx context.Context, postID, studentID int64, req *dto.CreateSubmissionRequest, attachmentFileID *int64) (*dto.SubmissionResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !post.IsTask() {
		return nil, apperrors.ErrNotATask
	}

	isMember, err := s.memberRepo.IsMember(ctx, post.ClassID, studentID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, auth.ErrPermissionDenied
	}

	submission := &models.Submission{
		PostID:           postID,
		StudentID:        studentID,
		Comment:          req.Comment,
		AttachmentFileID: attachmentFileID,
	}

	id, err := s.submissionRepo.Create(ctx, submission)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("submissionID", id).Int64("postID", postID).
		Int64("studentID", studentID).Msg("Submission received")

	created, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toSubmissionResponse(ctx, created), nil
}

// ListForTask retrieves every submission for a task. Owner only.
func (s *SubmissionService) ListForTask(ctx context.Context, postID, teacherID int64) (*dto.SubmissionListResponse, error) {
	post, err := s.authz.ValidatePostOwnership(ctx, postID, teacherID)
	if err != nil {
		return nil, err
	}
	if !post.IsTask() {
		return nil, apperrors.ErrNotATask
	}

	submissions, err := s.submissionRepo.GetByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SubmissionListResponse{
		Submissions: make([]dto.SubmissionResponse, 0, len(submissions)),
	}
	for _, submission := range submissions {
		resp.Submissions = append(resp.Submissions, *s.toSubmissionResponse(ctx, submission))
	}

	return resp, nil
}

// GetOwn retrieves the caller's submission for a task
func (s *SubmissionService) GetOwn(ctx context.Context, postID, studentID int64) (*dto.SubmissionResponse, error) {
	submission, err := s.submissionRepo.GetByPostAndStudent(ctx, postID, studentID)
	if err != nil {
		return nil, err
	}

	return s.toSubmissionResponse(ctx, submission), nil
}

// Grade assigns a score and optional feedback to a submission and notifies
// the student. Only the teacher owning the class may grade; regrading simply
// overwrites the previous score.
func (s *SubmissionService) Grade(ctx context.Context, submissionID, teacherID int64, req *dto.GradeSubmissionRequest) (*dto.SubmissionResponse, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	post, err := s.authz.ValidatePostOwnership(ctx, submission.PostID, teacherID)
	if err != nil {
		return nil, err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.submissionRepo.Grade(ctx, tx, submissionID, req.Score, req.Feedback); err != nil {
			return err
		}

		title := post.Body
		if post.Title != nil {
			title = *post.Title
		}
		content := fmt.Sprintf("Your submission for %q was graded: %.2f", title, req.Score)
		return s.notifications.Notify(ctx, tx, &models.Notification{
			RecipientID: submission.StudentID,
			Type:        models.NotificationSubmissionGraded,
			Content:     content,
			ReferenceID: &submission.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("submissionID", submissionID).Float64("score", req.Score).
		Msg("Submission graded")

	if submission.Student != nil {
		title := post.Body
		if post.Title != nil {
			title = *post.Title
		}
		s.notifications.EmailGrade(submission.Student, title, req.Score)
	}

	graded, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	return s.toSubmissionResponse(ctx, graded), nil
}

func (s *SubmissionService) toSubmissionResponse(ctx context.Context, submission *models.Submission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:          submission.ID,
		PostID:      submission.PostID,
		StudentID:   submission.StudentID,
		Comment:     submission.Comment,
		Score:       submission.Score,
		Feedback:    submission.Feedback,
		SubmittedAt: submission.SubmittedAt,
	}
	if submission.Student != nil {
		resp.StudentName = submission.Student.FullName()
	}
	if submission.AttachmentFileID != nil {
		if file, err := s.fileRepo.GetByID(ctx, *submission.AttachmentFileID); err == nil {
			resp.Attachment = toFileResponse(file)
		} else {
			s.logger.Warn().Err(err).Int64("fileID", *submission.AttachmentFileID).Msg("Failed to load submission attachment")
		}
	}
	return resp
}
