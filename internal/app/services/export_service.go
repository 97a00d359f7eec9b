package services

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/auth"
	"github.com/dromero/aulasync/internal/app/repositories"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
)

// ExportService produces grade reports. Export endpoints are gated to the
// owning teacher.
type ExportService struct {
	classRepo      *repositories.ClassRepository
	memberRepo     *repositories.ClassMemberRepository
	postRepo       *repositories.PostRepository
	submissionRepo *repositories.SubmissionRepository
	authz          *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	classRepo *repositories.ClassRepository,
	memberRepo *repositories.ClassMemberRepository,
	postRepo *repositories.PostRepository,
	submissionRepo *repositories.SubmissionRepository,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) *ExportService {
	return &ExportService{
		classRepo:      classRepo,
		memberRepo:     memberRepo,
		postRepo:       postRepo,
		submissionRepo: submissionRepo,
		authz:          authz,
		logger:         logger,
	}
}

// ExportClassCSV writes the sectioned class report to w
func (s *ExportService) ExportClassCSV(ctx context.Context, classID, teacherID int64, w io.Writer) error {
	report, err := s.buildReport(ctx, classID, teacherID)
	if err != nil {
		return err
	}

	if err := WriteClassReportCSV(w, report); err != nil {
		s.logger.Error().Err(err).Int64("classID", classID).Msg("Failed to render class report")
		return err
	}

	s.logger.Info().Int64("classID", classID).Int("tasks", len(report.Tasks)).Msg("Class report exported")
	return nil
}

// ExportTaskCSV writes the flat single-task report to w
func (s *ExportService) ExportTaskCSV(ctx context.Context, postID, teacherID int64, w io.Writer) error {
	post, err := s.authz.ValidatePostOwnership(ctx, postID, teacherID)
	if err != nil {
		return err
	}
	if !post.IsTask() {
		return apperrors.ErrNotATask
	}

	report, err := s.buildReport(ctx, post.ClassID, teacherID)
	if err != nil {
		return err
	}

	for i := range report.Tasks {
		if report.Tasks[i].TaskID == postID {
			return WriteTaskReportCSV(w, &report.Tasks[i])
		}
	}

	// The task exists but produced no section, which can only mean the
	// class state changed under us
	return apperrors.ErrPostNotFound
}

func (s *ExportService) buildReport(ctx context.Context, classID, teacherID int64) (*ClassReport, error) {
	class, err := s.authz.ValidateClassOwnership(ctx, classID, teacherID)
	if err != nil {
		return nil, err
	}

	roster, err := s.memberRepo.GetRoster(ctx, classID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.postRepo.GetTasksByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.GetByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	return BuildClassReport(class, roster, tasks, submissions, time.Now()), nil
}
