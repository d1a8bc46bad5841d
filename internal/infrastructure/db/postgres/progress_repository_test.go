package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_Bootstrap(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("inserts zero counters", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO user_progress`).
			WithArgs("user-1", now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewProgressRepository(mock)
		require.NoError(t, repo.Bootstrap(context.Background(), "user-1", now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing row is a no-op, not an error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO user_progress`).
			WithArgs("user-1", now).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		repo := NewProgressRepository(mock)
		require.NoError(t, repo.Bootstrap(context.Background(), "user-1", now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO user_progress`).
			WithArgs("user-1", now).
			WillReturnError(errors.New("connection refused"))

		repo := NewProgressRepository(mock)
		err = repo.Bootstrap(context.Background(), "user-1", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bootstrap progress")
	})
}

func TestProgressRepository_Touch(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("upserts activity timestamps", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO user_progress`).
			WithArgs("user-1", now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewProgressRepository(mock)
		require.NoError(t, repo.Touch(context.Background(), "user-1", now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO user_progress`).
			WithArgs("user-1", now).
			WillReturnError(errors.New("timeout"))

		repo := NewProgressRepository(mock)
		err = repo.Touch(context.Background(), "user-1", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "touch progress")
	})
}
