package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassMemberRepositoryAdd(t *testing.T) {
	r := NewClassMemberRepository(nil)

	t.Run("inserts and reports a new membership", func(t *testing.T) {
		q := &fakeQuerier{execTag: pgconn.NewCommandTag("INSERT 0 1")}

		added, err := r.Add(context.Background(), q, 10, 20)

		require.NoError(t, err)
		assert.True(t, added)
		assert.Contains(t, q.sql, "ON CONFLICT (class_id, student_id) DO NOTHING")
		assert.Equal(t, []any{int64(10), int64(20)}, q.args)
	})

	// An existing membership must come back as (false, nil), never as a
	// unique violation: raising one inside the invitation-accept
	// transaction would abort it and fail the commit.
	t.Run("tolerates an existing membership without error", func(t *testing.T) {
		q := &fakeQuerier{execTag: pgconn.NewCommandTag("INSERT 0 0")}

		added, err := r.Add(context.Background(), q, 10, 20)

		require.NoError(t, err)
		assert.False(t, added)
	})
}

func TestClassMemberRepositoryRemove(t *testing.T) {
	r := NewClassMemberRepository(nil)

	t.Run("reports a removed membership", func(t *testing.T) {
		q := &fakeQuerier{execTag: pgconn.NewCommandTag("DELETE 1")}

		removed, err := r.Remove(context.Background(), q, 10, 20)

		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("reports a missing membership without error", func(t *testing.T) {
		q := &fakeQuerier{execTag: pgconn.NewCommandTag("DELETE 0")}

		removed, err := r.Remove(context.Background(), q, 10, 20)

		require.NoError(t, err)
		assert.False(t, removed)
	})
}
