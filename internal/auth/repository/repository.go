package repository

import (
	"context"

	"github.com/r2c-platform/admin-backend/internal/auth/domain"
)

// PrincipalRepository is the principal-record store. Implementations return
// domain.ErrPrincipalNotFound for absent records and wrap every other failure.
type PrincipalRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.Principal, error)
	List(ctx context.Context) ([]domain.Principal, error)
	// RecordSignIn refreshes profile fields and sets the last login time to
	// the store's notion of now. It never creates a record.
	RecordSignIn(ctx context.Context, subjectID string, upd domain.SignInUpdate) error
}
