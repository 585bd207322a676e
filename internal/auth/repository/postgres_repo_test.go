package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r2c-platform/admin-backend/internal/auth/domain"
)

func setupPostgresRepo(t *testing.T) (*PostgresPrincipalRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresPrincipalRepository(db), mock
}

var principalColumns = []string{"firebase_uid", "email", "display_name", "photo_url", "role", "last_login_at"}

func TestPostgresPrincipalRepository_GetBySubjectID(t *testing.T) {
	t.Run("maps nullable columns", func(t *testing.T) {
		repo, mock := setupPostgresRepo(t)
		login := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE firebase_uid = $1`)).
			WithArgs("uid-1").
			WillReturnRows(sqlmock.NewRows(principalColumns).
				AddRow("uid-1", "ada@example.com", "Ada", nil, "admin", login))

		p, err := repo.GetBySubjectID(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", p.SubjectID)
		assert.Equal(t, "Ada", p.DisplayName)
		assert.Empty(t, p.AvatarURL)
		assert.True(t, p.IsAdmin())
		require.NotNil(t, p.LastLoginAt)
		assert.True(t, login.Equal(*p.LastLoginAt))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows is not found", func(t *testing.T) {
		repo, mock := setupPostgresRepo(t)

		mock.ExpectQuery(`SELECT firebase_uid`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetBySubjectID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrPrincipalNotFound)
	})

	t.Run("driver failure is wrapped", func(t *testing.T) {
		repo, mock := setupPostgresRepo(t)
		boom := errors.New("connection reset")

		mock.ExpectQuery(`SELECT firebase_uid`).WillReturnError(boom)

		_, err := repo.GetBySubjectID(context.Background(), "uid-1")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrPrincipalNotFound)
	})
}

func TestPostgresPrincipalRepository_List(t *testing.T) {
	repo, mock := setupPostgresRepo(t)

	mock.ExpectQuery(`ORDER BY email`).
		WillReturnRows(sqlmock.NewRows(principalColumns).
			AddRow("uid-1", "ada@example.com", "Ada", nil, "admin", nil).
			AddRow("uid-2", "bob@example.com", nil, nil, "researcher", nil))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "researcher", list[1].Role)
	assert.Nil(t, list[1].LastLoginAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPrincipalRepository_RecordSignIn(t *testing.T) {
	t.Run("updates existing row", func(t *testing.T) {
		repo, mock := setupPostgresRepo(t)

		mock.ExpectExec(`UPDATE users`).
			WithArgs("uid-1", "ada@example.com", "Ada", nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RecordSignIn(context.Background(), "uid-1", domain.SignInUpdate{
			Email:       "ada@example.com",
			DisplayName: "Ada",
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("never inserts a missing principal", func(t *testing.T) {
		repo, mock := setupPostgresRepo(t)

		mock.ExpectExec(`UPDATE users`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RecordSignIn(context.Background(), "missing", domain.SignInUpdate{Email: "x@example.com"})
		assert.ErrorIs(t, err, domain.ErrPrincipalNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
