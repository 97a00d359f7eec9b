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

// InvitationService handles the invitation lifecycle
type InvitationService struct {
	invitationRepo *repositories.InvitationRepository
	classRepo      *repositories.ClassRepository
	memberRepo     *repositories.ClassMemberRepository
	userRepo       *repositories.UserRepository
	notifications  *NotificationService
	database       *db.PostgresDB
	authz          *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(
	invitationRepo *repositories.InvitationRepository,
	classRepo *repositories.ClassRepository,
	memberRepo *repositories.ClassMemberRepository,
	userRepo *repositories.UserRepository,
	notifications *NotificationService,
	database *db.PostgresDB,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		classRepo:      classRepo,
		memberRepo:     memberRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		database:       database,
		authz:          authz,
		logger:         logger,
	}
}

// Invite creates a pending invitation for a student and notifies them.
// Inviting a current member or re-inviting with a pending invitation
// outstanding are conflicts.
func (s *InvitationService) Invite(ctx context.Context, classID, teacherID, studentID int64) (*dto.InvitationResponse, error) {
	class, err := s.authz.ValidateClassOwnership(ctx, classID, teacherID)
	if err != nil {
		return nil, err
	}

	student, err := s.authz.GetUserInfo(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, apperrors.NewBadRequestError("only students can be invited to classes")
	}

	isMember, err := s.memberRepo.IsMember(ctx, classID, studentID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.ErrAlreadyMember
	}

	invitation := &models.Invitation{
		ClassID:   classID,
		StudentID: studentID,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, err := s.invitationRepo.Create(ctx, tx, invitation)
		if err != nil {
			return err
		}
		invitation.ID = id

		content := fmt.Sprintf("%s invited you to join %s", class.Teacher.FullName(), class.Name)
		return s.notifications.Notify(ctx, tx, &models.Notification{
			RecipientID: studentID,
			Type:        models.NotificationInvitation,
			Content:     content,
			ReferenceID: &invitation.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("invitationID", invitation.ID).Int64("classID", classID).
		Int64("studentID", studentID).Msg("Invitation created")

	s.notifications.EmailInvitation(student, class)

	return &dto.InvitationResponse{
		ID:        invitation.ID,
		ClassID:   classID,
		ClassName: class.Name,
		StudentID: studentID,
		Status:    string(models.InvitationPending),
	}, nil
}

// ListForStudent retrieves a student's invitations, optionally filtered by status
func (s *InvitationService) ListForStudent(ctx context.Context, studentID int64, status *models.InvitationStatus) (*dto.InvitationListResponse, error) {
	invitations, err := s.invitationRepo.GetByStudent(ctx, studentID, status)
	if err != nil {
		return nil, err
	}

	return toInvitationList(invitations), nil
}

// ListForClass retrieves the invitations issued for a class. Owner only.
func (s *InvitationService) ListForClass(ctx context.Context, classID, teacherID int64) (*dto.InvitationListResponse, error) {
	if _, err := s.authz.ValidateClassOwnership(ctx, classID, teacherID); err != nil {
		return nil, err
	}

	invitations, err := s.invitationRepo.GetByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	return toInvitationList(invitations), nil
}

// Respond resolves a pending invitation. Accepting also enrolls the student,
// tolerating a roster entry that already exists; the status change wins or
// loses atomically, so two concurrent responses cannot both apply.
func (s *InvitationService) Respond(ctx context.Context, invitationID, studentID int64, accept bool) (*dto.InvitationResponse, error) {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if invitation.StudentID != studentID {
		return nil, auth.ErrPermissionDenied
	}

	target := models.InvitationRejected
	if accept {
		target = models.InvitationAccepted
	}
	if !invitation.Status.CanTransitionTo(target) {
		return nil, apperrors.ErrInvitationResolved
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		updated, err := s.invitationRepo.UpdateStatusIfPending(ctx, tx, invitationID, target)
		if err != nil {
			return err
		}
		if !updated {
			return apperrors.ErrInvitationResolved
		}

		if !accept {
			return nil
		}

		added, err := s.memberRepo.Add(ctx, tx, invitation.ClassID, studentID)
		if err != nil {
			return err
		}
		if added {
			return s.classRepo.IncrementStudentCount(ctx, tx, invitation.ClassID, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("invitationID", invitationID).Str("status", string(target)).
		Msg("Invitation resolved")

	resp := &dto.InvitationResponse{
		ID:        invitation.ID,
		ClassID:   invitation.ClassID,
		StudentID: invitation.StudentID,
		Status:    string(target),
		CreatedAt: invitation.CreatedAt,
	}
	if invitation.Class != nil {
		resp.ClassName = invitation.Class.Name
	}
	return resp, nil
}

func toInvitationList(invitations []*models.Invitation) *dto.InvitationListResponse {
	resp := &dto.InvitationListResponse{
		Invitations: make([]dto.InvitationResponse, 0, len(invitations)),
	}
	for _, invitation := range invitations {
		item := dto.InvitationResponse{
			ID:        invitation.ID,
			ClassID:   invitation.ClassID,
			StudentID: invitation.StudentID,
			Status:    string(invitation.Status),
			CreatedAt: invitation.CreatedAt,
		}
		if invitation.Class != nil {
			item.ClassName = invitation.Class.Name
		}
		resp.Invitations = append(resp.Invitations, item)
	}
	return resp
}
