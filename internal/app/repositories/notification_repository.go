package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/pkg/logger"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a single notification and fills in its generated ID and
// creation time
func (r *NotificationRepository) Create(ctx context.Context, q Querier, notification *models.Notification) (int64, error) {
	sql, args, err := r.sb.Insert("notifications").
		Columns("recipient_id", "type", "content", "reference_id").
		Values(notification.RecipientID, notification.Type, notification.Content, notification.ReferenceID).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create notification SQL")
		return 0, fmt.Errorf("failed to build create notification query: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, sql, args...).Scan(&id, &notification.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("recipientID", notification.RecipientID).Msg("Error executing create notification query")
		return 0, fmt.Errorf("error creating notification: %w", err)
	}

	notification.ID = id
	return id, nil
}

// CreateBatch inserts one notification per recipient in a single statement
// and fills in the generated IDs and creation times. Used to fan out a task
// announcement to a whole roster.
func (r *NotificationRepository) CreateBatch(ctx context.Context, q Querier, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	builder := r.sb.Insert("notifications").
		Columns("recipient_id", "type", "content", "reference_id")
	for _, n := range notifications {
		builder = builder.Values(n.RecipientID, n.Type, n.Content, n.ReferenceID)
	}

	sql, args, err := builder.Suffix("RETURNING id, created_at").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building batch notification SQL")
		return fmt.Errorf("failed to build batch notification query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("count", len(notifications)).Msg("Error executing batch notification query")
		return fmt.Errorf("error creating notifications: %w", err)
	}
	defer rows.Close()

	// RETURNING yields rows in insertion order for a multi-row VALUES insert
	i := 0
	for rows.Next() {
		if i >= len(notifications) {
			return fmt.Errorf("error creating notifications: more rows returned than inserted")
		}
		if err := rows.Scan(&notifications[i].ID, &notifications[i].CreatedAt); err != nil {
			return fmt.Errorf("error scanning created notification: %w", err)
		}
		i++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating created notifications: %w", err)
	}

	return nil
}

// GetByRecipient retrieves a user's notifications, newest first
func (r *NotificationRepository) GetByRecipient(ctx context.Context, recipientID int64, page, pageSize int) ([]*models.Notification, int64, error) {
	offset := (page - 1) * pageSize
	query := `
		SELECT id, recipient_id, type, content, reference_id, created_at,
			COUNT(*) OVER() AS total_count
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, recipientID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	var total int64
	for rows.Next() {
		notification := &models.Notification{}
		err := rows.Scan(
			&notification.ID, &notification.RecipientID, &notification.Type,
			&notification.Content, &notification.ReferenceID, &notification.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notification rows: %w", err)
	}

	if notifications == nil {
		notifications = []*models.Notification{}
	}

	return notifications, total, nil
}
