package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/r2c-platform/admin-backend/internal/auth/domain"
)

// PostgresPrincipalRepository reads principals from the users table:
//
//	users(firebase_uid PK, email UNIQUE, display_name, photo_url, role,
//	      last_login_at, created_at, updated_at)
type PostgresPrincipalRepository struct {
	db *sql.DB
}

func NewPostgresPrincipalRepository(db *sql.DB) *PostgresPrincipalRepository {
	return &PostgresPrincipalRepository{db: db}
}

const selectPrincipalColumns = `
		SELECT firebase_uid, email, display_name, photo_url, role, last_login_at
		FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrincipal(row rowScanner) (*domain.Principal, error) {
	var p domain.Principal
	var displayName, photoURL sql.NullString
	var lastLoginAt sql.NullTime

	if err := row.Scan(&p.SubjectID, &p.Email, &displayName, &photoURL, &p.Role, &lastLoginAt); err != nil {
		return nil, err
	}

	p.DisplayName = displayName.String
	p.AvatarURL = photoURL.String
	if lastLoginAt.Valid {
		p.LastLoginAt = &lastLoginAt.Time
	}
	return &p, nil
}

// GetBySubjectID retrieves a principal by Firebase UID
func (r *PostgresPrincipalRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.Principal, error) {
	p, err := scanPrincipal(r.db.QueryRowContext(ctx, selectPrincipalColumns+` WHERE firebase_uid = $1`, subjectID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get principal: %w", err)
	}
	return p, nil
}

func (r *PostgresPrincipalRepository) List(ctx context.Context) ([]domain.Principal, error) {
	rows, err := r.db.QueryContext(ctx, selectPrincipalColumns+` ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("failed to list principals: %w", err)
	}
	defer rows.Close()

	var out []domain.Principal
	for rows.Next() {
		p, err := scanPrincipal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan principal: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list principals: %w", err)
	}
	return out, nil
}

// RecordSignIn refreshes the profile and last login timestamp
func (r *PostgresPrincipalRepository) RecordSignIn(ctx context.Context, subjectID string, upd domain.SignInUpdate) error {
	query := `
		UPDATE users
		SET email = $2, display_name = $3, photo_url = $4, last_login_at = NOW(), updated_at = NOW()
		WHERE firebase_uid = $1
	`

	result, err := r.db.ExecContext(ctx, query, subjectID, upd.Email, nullString(upd.DisplayName), nullString(upd.AvatarURL))
	if err != nil {
		return fmt.Errorf("failed to record sign-in: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record sign-in: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrPrincipalNotFound
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
