package repository

import (
	"context"

	"github.com/r2c-platform/admin-backend/internal/studies/domain"
)

// StudyRepository is the document store behind the study engines. Lookups by
// ID match every stored representation of the ResourceID, while Delete only
// removes the record stored under the exact key it is given (as returned by
// FindByID). Absent records are reported as domain.ErrStudyNotFound.
type StudyRepository interface {
	Find(ctx context.Context, filter domain.Filter, page domain.Pagination) ([]domain.Study, error)
	Count(ctx context.Context, filter domain.Filter) (int64, error)
	FindByID(ctx context.Context, id domain.ResourceID) (*domain.Study, error)
	SetApproved(ctx context.Context, id domain.ResourceID, approved bool) (*domain.Study, error)
	Delete(ctx context.Context, id domain.ResourceID) error
	Ping(ctx context.Context) error
}
