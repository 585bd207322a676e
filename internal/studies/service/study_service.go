package service

import (
	"context"
	"errors"
	"time"

	"github.com/r2c-platform/admin-backend/internal/apierr"
	"github.com/r2c-platform/admin-backend/internal/logger"
	"github.com/r2c-platform/admin-backend/internal/studies/domain"
	"github.com/r2c-platform/admin-backend/internal/studies/repository"
)

// FileArea removes attachments from local storage.
type FileArea interface {
	Remove(location string) error
}

type StudyService struct {
	repo    repository.StudyRepository
	files   FileArea
	timeout time.Duration
	log     *logger.Logger
}

func NewStudyService(repo repository.StudyRepository, files FileArea, timeout time.Duration, log *logger.Logger) *StudyService {
	return &StudyService{
		repo:    repo,
		files:   files,
		timeout: timeout,
		log:     log.With("service", "StudyService"),
	}
}

func (s *StudyService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// List returns one page of studies matching filter, newest first, together
// with the total number of matches.
func (s *StudyService) List(ctx context.Context, filter domain.Filter, page domain.Pagination) (*domain.Page, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	items, err := s.repo.Find(ctx, filter, page)
	if err != nil {
		return nil, apierr.Upstream("error fetching studies", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, apierr.Upstream("error fetching studies", err)
	}
	if items == nil {
		items = []domain.Study{}
	}

	return &domain.Page{
		Items:       items,
		TotalPages:  page.TotalPages(total),
		CurrentPage: page.Page,
		TotalCount:  total,
	}, nil
}

func (s *StudyService) Get(ctx context.Context, id domain.ResourceID) (*domain.Study, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	study, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, classify("error fetching study", err)
	}
	return study, nil
}

// Approve overwrites the approval flag. The last write wins.
func (s *StudyService) Approve(ctx context.Context, id domain.ResourceID, approved bool) (*domain.Study, error) {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	study, err := s.repo.SetApproved(ctx, id, approved)
	if err != nil {
		return nil, classify("error updating study approval", err)
	}
	s.log.Info("study approval updated", "study_id", study.ID.String(), "approved", approved)
	return study, nil
}

// Delete removes a study owned by requesterID. Local attachments are removed
// first on a best-effort basis; failures there never affect the outcome.
func (s *StudyService) Delete(ctx context.Context, id domain.ResourceID, requesterID string) error {
	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	study, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return classify("error deleting study", err)
	}
	if !study.OwnedBy(requesterID) {
		s.log.Warn("delete rejected: not the owner", "study_id", id.String(), "subject_id", requesterID)
		return domain.ErrNotOwner
	}

	s.removeAttachments(study)

	if err := s.repo.Delete(ctx, study.ID); err != nil {
		return classify("error deleting study", err)
	}
	s.log.Info("study deleted", "study_id", study.ID.String(), "subject_id", requesterID)
	return nil
}

func (s *StudyService) removeAttachments(study *domain.Study) {
	if s.files == nil {
		return
	}
	for _, doc := range study.LocalDocuments() {
		if err := s.files.Remove(doc.FileLocation); err != nil {
			s.log.Warn("failed to remove attachment", "study_id", study.ID.String(), "file", doc.FileLocation, "error", err)
		}
	}
}

// classify keeps not-found outcomes and turns everything else into an
// upstream failure.
func classify(message string, err error) error {
	if errors.Is(err, domain.ErrStudyNotFound) {
		return domain.ErrStudyNotFound
	}
	return apierr.Upstream(message, err)
}
