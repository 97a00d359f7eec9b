package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dromero/aulasync/internal/app/models"
)

func TestNotificationRepositoryCreate(t *testing.T) {
	r := NewNotificationRepository(nil)
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
		*dest[0].(*int64) = 7
		*dest[1].(*time.Time) = created
		return nil
	}}}

	n := &models.Notification{RecipientID: 20, Type: models.NotificationInvitation, Content: "hi"}
	id, err := r.Create(context.Background(), q, n)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), n.ID)
	assert.Equal(t, created, n.CreatedAt)
	assert.Contains(t, q.sql, "RETURNING id, created_at")
}

func TestNotificationRepositoryCreateBatch(t *testing.T) {
	r := NewNotificationRepository(nil)
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	// Every inserted notification must come back with its generated ID and
	// creation time, so the pushes fanned out afterwards carry real values
	t.Run("fills generated IDs and creation times", func(t *testing.T) {
		q := &fakeQuerier{rows: &fakeRows{rows: [][]any{
			{int64(7), created},
			{int64(8), created.Add(time.Millisecond)},
		}}}

		notifications := []*models.Notification{
			{RecipientID: 20, Type: models.NotificationNewTask, Content: "task"},
			{RecipientID: 21, Type: models.NotificationNewTask, Content: "task"},
		}

		err := r.CreateBatch(context.Background(), q, notifications)

		require.NoError(t, err)
		assert.Contains(t, q.sql, "RETURNING id, created_at")
		assert.Equal(t, int64(7), notifications[0].ID)
		assert.Equal(t, created, notifications[0].CreatedAt)
		assert.Equal(t, int64(8), notifications[1].ID)
		assert.Equal(t, created.Add(time.Millisecond), notifications[1].CreatedAt)
	})

	t.Run("skips the statement for an empty batch", func(t *testing.T) {
		q := &fakeQuerier{}

		err := r.CreateBatch(context.Background(), q, nil)

		require.NoError(t, err)
		assert.Empty(t, q.sql)
	})
}
