package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dromero/aulasync/internal/app/models"
	"github.com/dromero/aulasync/internal/pkg/apperrors"
)

func TestInvitationRepositoryCreate(t *testing.T) {
	r := NewInvitationRepository(nil)
	invitation := &models.Invitation{ClassID: 10, StudentID: 20}

	t.Run("returns the generated ID", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int64) = 42
			return nil
		}}}

		id, err := r.Create(context.Background(), q, invitation)

		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		assert.Equal(t, []any{int64(10), int64(20), models.InvitationPending}, q.args)
	})

	// The unique index only spans PENDING rows, so this conflict means a
	// pending invitation is already outstanding. A resolved invitation
	// never fires it; re-inviting after a rejection must stay possible.
	t.Run("maps a pending-invitation conflict", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "invitations_class_id_student_id_key"}
		}}}

		_, err := r.Create(context.Background(), q, invitation)

		assert.ErrorIs(t, err, apperrors.ErrInvitationExists)
	})

	t.Run("passes through other constraint violations", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
			return &pgconn.PgError{Code: "23503", ConstraintName: "invitations_student_id_fkey"}
		}}}

		_, err := r.Create(context.Background(), q, invitation)

		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrInvitationExists)
	})
}

func TestInvitationRepositoryUpdateStatusIfPending(t *testing.T) {
	r := NewInvitationRepository(nil)

	t.Run("resolves a pending invitation", func(t *testing.T) {
		q := &fakeQuerier{execTag: pgconn.NewCommandTag("UPDATE 1")}

		updated, err := r.UpdateStatusIfPending(context.Background(), q, 42, models.InvitationAccepted)

		require.NoError(t, err)
		assert.True(t, updated)
		assert.Contains(t, q.sql, "status = $")
	})

	t.Run("reports an already resolved invitation", func(t *testing.T) {
		q := &fakeQuerier{execTag: pgconn.NewCommandTag("UPDATE 0")}

		updated, err := r.UpdateStatusIfPending(context.Background(), q, 42, models.InvitationAccepted)

		require.NoError(t, err)
		assert.False(t, updated)
	})
}
