package http

import (
	"context"

	"github.com/r2c-platform/admin-backend/internal/logger"
	"github.com/r2c-platform/admin-backend/internal/studies/domain"
)

type StudyService interface {
	List(ctx context.Context, filter domain.Filter, page domain.Pagination) (*domain.Page, error)
	Get(ctx context.Context, id domain.ResourceID) (*domain.Study, error)
	Approve(ctx context.Context, id domain.ResourceID, approved bool) (*domain.Study, error)
	Delete(ctx context.Context, id domain.ResourceID, requesterID string) error
}

type Handler struct {
	studyService StudyService
	log          *logger.Logger
}

func New(studyService StudyService, log *logger.Logger) *Handler {
	return &Handler{
		studyService: studyService,
		log:          log.With("handler", "studies"),
	}
}

// approveRequest requires a JSON boolean; strings, numbers and null fail to bind.
type approveRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}
