package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r2c-platform/admin-backend/internal/studies/domain"
)

const sampleSeed = `
studies:
  - id: 665f1c2b9a1e4b3d2c1f0a9e
    title: Sleep patterns in shift workers
    genres: [Health, Biology]
    approved: true
    researcher_id: uid-7
    documents:
      - file_name: protocol.pdf
        file_location: documents/protocol.pdf
    created_at: 2024-05-01T10:00:00Z
  - id: legacy-12
    title: Urban noise
  - title: No id given
`

func TestParseSeed(t *testing.T) {
	studies, err := parseSeed([]byte(sampleSeed))
	require.NoError(t, err)
	require.Len(t, studies, 3)

	first := studies[0]
	assert.True(t, first.ID.IsObjectIDCandidate())
	assert.Equal(t, "665f1c2b9a1e4b3d2c1f0a9e", first.ID.String())
	assert.Equal(t, []string{"Health", "Biology"}, first.Genres)
	assert.Equal(t, "uid-7", first.ResearcherID)
	assert.Equal(t, "documents/protocol.pdf", first.Documents[0].FileLocation)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), first.CreatedAt.UTC())

	assert.Equal(t, "legacy-12", studies[1].ID.String())
	assert.False(t, studies[1].ID.IsObjectIDCandidate())

	assert.False(t, studies[2].ID.IsZero())
	assert.False(t, studies[2].CreatedAt.IsZero())
}

func TestParseSeedRejectsBadInput(t *testing.T) {
	_, err := parseSeed([]byte("studies: [oops"))
	assert.Error(t, err)

	_, err = parseSeed([]byte("studies:\n  - id: $where\n"))
	assert.Error(t, err)
}

func TestLoadSeedFileIntoMemoryStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o644))

	studies, err := LoadSeedFile(path)
	require.NoError(t, err)

	repo := NewMemoryStudyRepository(studies...)
	n, err := repo.Count(t.Context(), domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseSeedReportsFailingEntry(t *testing.T) {
	raw := "studies:\n  - id: legacy-1\n    title: ok\n  - id: \"$bad\"\n    title: broken\n"

	_, err := parseSeed([]byte(raw))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedIdentifier)
	assert.Contains(t, err.Error(), "seed study 1")
}
