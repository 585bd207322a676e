package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/r2c-platform/admin-backend/internal/studies/domain"
)

// MemoryStudyRepository holds studies in process. It backs local development
// (STUDY_STORE=memory) and evaluates filters with domain.Filter.Matches.
type MemoryStudyRepository struct {
	mu      sync.RWMutex
	studies []domain.Study
}

func NewMemoryStudyRepository(seed ...domain.Study) *MemoryStudyRepository {
	r := &MemoryStudyRepository{}
	for _, s := range seed {
		r.Insert(s)
	}
	return r
}

// Insert adds a study; the caller owns ID uniqueness.
func (r *MemoryStudyRepository) Insert(s domain.Study) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.studies = append(r.studies, cloneStudy(s))
}

func (r *MemoryStudyRepository) matching(filter domain.Filter) []domain.Study {
	var out []domain.Study
	for i := range r.studies {
		if filter.Matches(&r.studies[i]) {
			out = append(out, cloneStudy(r.studies[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *MemoryStudyRepository) Find(_ context.Context, filter domain.Filter, page domain.Pagination) ([]domain.Study, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.matching(filter)
	skip := page.Skip()
	if skip >= int64(len(all)) {
		return []domain.Study{}, nil
	}
	end := skip + int64(page.Limit)
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

func (r *MemoryStudyRepository) Count(_ context.Context, filter domain.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(filter))), nil
}

func (r *MemoryStudyRepository) indexOf(id domain.ResourceID) int {
	for i := range r.studies {
		if r.studies[i].ID.Equivalent(id) {
			return i
		}
	}
	return -1
}

func (r *MemoryStudyRepository) FindByID(_ context.Context, id domain.ResourceID) (*domain.Study, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrStudyNotFound
	}
	s := cloneStudy(r.studies[i])
	return &s, nil
}

func (r *MemoryStudyRepository) SetApproved(_ context.Context, id domain.ResourceID, approved bool) (*domain.Study, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrStudyNotFound
	}
	r.studies[i].Approved = approved
	s := cloneStudy(r.studies[i])
	return &s, nil
}

func (r *MemoryStudyRepository) Delete(_ context.Context, id domain.ResourceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := -1
	for j := range r.studies {
		if r.studies[j].ID.Identical(id) {
			i = j
			break
		}
	}
	if i < 0 {
		return domain.ErrStudyNotFound
	}
	r.studies = append(r.studies[:i], r.studies[i+1:]...)
	return nil
}

func (r *MemoryStudyRepository) Ping(context.Context) error { return nil }

func cloneStudy(s domain.Study) domain.Study {
	s.Genres = append([]string(nil), s.Genres...)
	s.Documents = append([]domain.Document(nil), s.Documents...)
	return s
}
