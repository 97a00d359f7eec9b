package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/app/models/dto"
	"github.com/dromero/aulasync/internal/app/repositories"
	"github.com/dromero/aulasync/internal/pkg/email"
	"github.com/dromero/aulasync/internal/pkg/helpers"
	"github.com/dromero/aulasync/internal/pkg/websocket"
)

// NotificationService handles the notification inbox, real-time pushes and
// notification emails
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	hub              *websocket.Hub
	emailService     email.EmailService
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	hub *websocket.Hub,
	emailService email.EmailService,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
		emailService:     emailService,
		logger:           logger,
	}
}

// List retrieves a user's notification inbox, newest first
func (s *NotificationService) List(ctx context.Context, userID int64, page, pageSize int) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.GetByRecipient(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationListResponse{
		Notifications:  make([]dto.NotificationResponse, 0, len(notifications)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, dto.NotificationResponse{
			ID:          n.ID,
			Type:        string(n.Type),
			Content:     n.Content,
			ReferenceID: n.ReferenceID,
			CreatedAt:   n.CreatedAt,
		})
	}

	return resp, nil
}

// Notify persists a notification on the caller's Querier and pushes it to
// the recipient's open connections. The push is best-effort: a client that
// misses it still finds the entry in the inbox.
func (s *NotificationService) Notify(ctx context.Context, q repositories.Querier, n *models.Notification) error {
	if _, err := s.notificationRepo.Create(ctx, q, n); err != nil {
		return err
	}

	s.hub.SendToUser(&websocket.Push{
		RecipientID: n.RecipientID,
		ID:          n.ID,
		Type:        n.Type,
		Content:     n.Content,
		ReferenceID: n.ReferenceID,
		Timestamp:   n.CreatedAt,
	})

	return nil
}

// NotifyBatch persists notifications for many recipients in one statement
// and pushes to each of them
func (s *NotificationService) NotifyBatch(ctx context.Context, q repositories.Querier, notifications []*models.Notification) error {
	if err := s.notificationRepo.CreateBatch(ctx, q, notifications); err != nil {
		return err
	}

	for _, n := range notifications {
		s.hub.SendToUser(&websocket.Push{
			RecipientID: n.RecipientID,
			ID:          n.ID,
			Type:        n.Type,
			Content:     n.Content,
			ReferenceID: n.ReferenceID,
			Timestamp:   n.CreatedAt,
		})
	}

	return nil
}

// EmailInvitation sends the invitation email off the request path.
// Failures are logged, never surfaced.
func (s *NotificationService) EmailInvitation(student *models.User, class *models.Class) {
	teacherName := ""
	if class.Teacher != nil {
		teacherName = class.Teacher.FullName()
	}

	go func() {
		if err := s.emailService.SendInvitationEmail(student.Email, student.FullName(), class.Name, teacherName); err != nil {
			s.logger.Warn().Err(err).Str("toEmail", student.Email).Msg("Failed to send invitation email")
		}
	}()
}

// EmailGrade sends the grade email off the request path
func (s *NotificationService) EmailGrade(student *models.User, taskTitle string, score float64) {
	go func() {
		if err := s.emailService.SendGradeEmail(student.Email, student.FullName(), taskTitle, score); err != nil {
			s.logger.Warn().Err(err).Str("toEmail", student.Email).Msg("Failed to send grade email")
		}
	}()
}
