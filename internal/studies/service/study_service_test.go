package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/r2c-platform/admin-backend/internal/apierr"
	"github.com/r2c-platform/admin-backend/internal/logger"
	"github.com/r2c-platform/admin-backend/internal/storage/files"
	"github.com/r2c-platform/admin-backend/internal/studies/domain"
	"github.com/r2c-platform/admin-backend/internal/studies/repository"
)

func seeded(n int) *repository.MemoryStudyRepository {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryStudyRepository()
	for i := 0; i < n; i++ {
		repo.Insert(domain.Study{
			ID:        domain.NewObjectResourceID(primitive.NewObjectID()),
			Title:     fmt.Sprintf("Study %d", i),
			Genres:    []string{"Health"},
			Approved:  i < 10,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return repo
}

func TestListPagination(t *testing.T) {
	svc := NewStudyService(seeded(25), nil, time.Second, logger.Nop())
	ctx := context.Background()

	first, err := svc.List(ctx, domain.Filter{}, domain.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, int64(25), first.TotalCount)
	assert.Equal(t, 1, first.CurrentPage)

	third, err := svc.List(ctx, domain.Filter{}, domain.NewPagination(3, 10))
	require.NoError(t, err)
	assert.Len(t, third.Items, 5)
	assert.Equal(t, 3, third.CurrentPage)
}

func TestListApprovalTriState(t *testing.T) {
	svc := NewStudyService(seeded(25), nil, time.Second, logger.Nop())
	ctx := context.Background()
	page := domain.NewPagination(1, 100)

	count := func(approved string) int64 {
		p, err := svc.List(ctx, domain.NewFilter(approved, nil, ""), page)
		require.NoError(t, err)
		return p.TotalCount
	}

	assert.Equal(t, int64(25), count(""))
	assert.Equal(t, int64(10), count("true"))
	assert.Equal(t, int64(15), count("false"))
	assert.Equal(t, count(""), count("maybe"))
}

func TestApproveLastWriteWinsAcrossIDForms(t *testing.T) {
	oid := primitive.NewObjectID()
	repo := repository.NewMemoryStudyRepository(domain.Study{ID: domain.NewStringResourceID(oid.Hex()), Title: "legacy"})
	svc := NewStudyService(repo, nil, time.Second, logger.Nop())
	ctx := context.Background()

	asString, err := domain.ParseResourceID(oid.Hex())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, asString, true)
	require.NoError(t, err)

	got, err := svc.Get(ctx, domain.NewObjectResourceID(oid))
	require.NoError(t, err)
	assert.True(t, got.Approved)

	_, err = svc.Approve(ctx, domain.NewObjectResourceID(oid), false)
	require.NoError(t, err)

	got, err = svc.Get(ctx, asString)
	require.NoError(t, err)
	assert.False(t, got.Approved)
}

func TestApproveNotFound(t *testing.T) {
	svc := NewStudyService(repository.NewMemoryStudyRepository(), nil, time.Second, logger.Nop())

	_, err := svc.Approve(context.Background(), domain.NewStringResourceID("missing"), true)
	assert.ErrorIs(t, err, domain.ErrStudyNotFound)
	assert.Equal(t, apierr.ResourceNotFound, apierr.KindOf(err))
}

type deleteFixture struct {
	svc      *StudyService
	repo     *repository.MemoryStudyRepository
	id       domain.ResourceID
	filePath string
}

func newDeleteFixture(t *testing.T) deleteFixture {
	t.Helper()
	root := filepath.Join(t.TempDir(), "documents")
	require.NoError(t, os.MkdirAll(root, 0o755))
	filePath := filepath.Join(root, "consent.pdf")
	require.NoError(t, os.WriteFile(filePath, []byte("pdf"), 0o644))

	area, err := files.NewLocalArea(root)
	require.NoError(t, err)

	id := domain.NewObjectResourceID(primitive.NewObjectID())
	repo := repository.NewMemoryStudyRepository(domain.Study{
		ID:           id,
		ResearcherID: "owner-uid",
		Documents: []domain.Document{
			{FileName: "consent.pdf", FileLocation: "documents/consent.pdf"},
			{FileName: "remote", FileLocation: "https://cdn.example.com/remote.pdf"},
			{FileName: "gone", FileLocation: "documents/already-gone.pdf"},
		},
	})

	return deleteFixture{
		svc:      NewStudyService(repo, area, time.Second, logger.Nop()),
		repo:     repo,
		id:       id,
		filePath: filePath,
	}
}

func TestDeleteByNonOwnerIsForbiddenAndSideEffectFree(t *testing.T) {
	f := newDeleteFixture(t)
	ctx := context.Background()

	err := f.svc.Delete(ctx, f.id, "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Equal(t, apierr.Forbidden, apierr.KindOf(err))

	_, err = f.repo.FindByID(ctx, f.id)
	assert.NoError(t, err)
	assert.FileExists(t, f.filePath)
}

func TestDeleteByOwnerRemovesRecordAndLocalFiles(t *testing.T) {
	f := newDeleteFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Delete(ctx, f.id, "owner-uid"))

	assert.NoFileExists(t, f.filePath)
	_, err := f.repo.FindByID(ctx, f.id)
	assert.ErrorIs(t, err, domain.ErrStudyNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.id, "owner-uid"), domain.ErrStudyNotFound)
}

func TestDeleteRemovesOnlyTheOwnerCheckedRecord(t *testing.T) {
	oid := primitive.NewObjectID()
	repo := repository.NewMemoryStudyRepository(
		domain.Study{ID: domain.NewStringResourceID(oid.Hex()), Title: "legacy", ResearcherID: "owner-uid"},
		domain.Study{ID: domain.NewObjectResourceID(oid), Title: "native", ResearcherID: "someone-else"},
	)
	svc := NewStudyService(repo, nil, time.Second, logger.Nop())
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, domain.NewObjectResourceID(oid), "owner-uid"))

	page, err := svc.List(ctx, domain.Filter{}, domain.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "native", page.Items[0].Title)
	assert.Equal(t, "someone-else", page.Items[0].ResearcherID)
}

type failingArea struct{ calls int }

func (a *failingArea) Remove(string) error {
	a.calls++
	return errors.New("permission denied")
}

func TestDeleteSwallowsFileErrors(t *testing.T) {
	id := domain.NewStringResourceID("s-1")
	repo := repository.NewMemoryStudyRepository(domain.Study{
		ID:           id,
		ResearcherID: "owner-uid",
		Documents:    []domain.Document{{FileLocation: "documents/a.pdf"}, {FileLocation: "documents/b.pdf"}},
	})
	area := &failingArea{}
	svc := NewStudyService(repo, area, time.Second, logger.Nop())

	require.NoError(t, svc.Delete(context.Background(), id, "owner-uid"))
	assert.Equal(t, 2, area.calls)

	_, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrStudyNotFound)
}

// racingRepo loses the record between lookup and delete.
type racingRepo struct {
	*repository.MemoryStudyRepository
}

func (r racingRepo) Delete(context.Context, domain.ResourceID) error {
	return domain.ErrStudyNotFound
}

func TestDeleteRaceReportsNotFound(t *testing.T) {
	id := domain.NewStringResourceID("s-1")
	repo := racingRepo{repository.NewMemoryStudyRepository(domain.Study{ID: id, ResearcherID: "owner-uid"})}
	svc := NewStudyService(repo, nil, time.Second, logger.Nop())

	assert.ErrorIs(t, svc.Delete(context.Background(), id, "owner-uid"), domain.ErrStudyNotFound)
}

type brokenRepo struct {
	*repository.MemoryStudyRepository
}

func (brokenRepo) Find(context.Context, domain.Filter, domain.Pagination) ([]domain.Study, error) {
	return nil, context.DeadlineExceeded
}

func (brokenRepo) FindByID(context.Context, domain.ResourceID) (*domain.Study, error) {
	return nil, errors.New("connection reset")
}

func TestStoreFailuresAreUpstream(t *testing.T) {
	svc := NewStudyService(brokenRepo{repository.NewMemoryStudyRepository()}, nil, time.Second, logger.Nop())
	ctx := context.Background()

	_, err := svc.List(ctx, domain.Filter{}, domain.NewPagination(1, 10))
	assert.Equal(t, apierr.UpstreamFailure, apierr.KindOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = svc.Get(ctx, domain.NewStringResourceID("x"))
	assert.Equal(t, apierr.UpstreamFailure, apierr.KindOf(err))

	err = svc.Delete(ctx, domain.NewStringResourceID("x"), "owner-uid")
	assert.Equal(t, apierr.UpstreamFailure, apierr.KindOf(err))
}
