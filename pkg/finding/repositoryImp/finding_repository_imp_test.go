package repositoryImp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofoto/database"
	"geofoto/entities"
)

func ptr(v float64) *float64 { return &v }

func newRepo(t *testing.T) (*findingRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "findings.db")
	r := New(path).(*findingRepo)
	require.NoError(t, r.Initialize(context.Background()))
	return r, path
}

func TestListAll_EmptyStore(t *testing.T) {
	r, _ := newRepo(t)

	list, err := r.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestInsert_ThenListAll(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	first := &entities.Finding{
		Latitude:                ptr(41.3833),
		Longitude:               ptr(2.1667),
		Classification:          entities.Petroglyph,
		DepthMM:                 3.2,
		LengthMM:                150,
		SupportMaterial:         "granite",
		HasRecognizablePatterns: true,
		PatternCount:            2,
		HasStraightLines:        true,
		Notes:                   "spirals near the stream",
	}
	require.NoError(t, r.Insert(ctx, first))
	assert.NotZero(t, first.ID)

	second := &entities.Finding{Classification: entities.Axe}
	require.NoError(t, r.Insert(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	list, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	got := list[0]
	assert.Equal(t, first.ID, got.ID)
	require.NotNil(t, got.Latitude)
	require.NotNil(t, got.Longitude)
	assert.InDelta(t, 41.3833, *got.Latitude, 1e-9)
	assert.InDelta(t, 2.1667, *got.Longitude, 1e-9)
	assert.Equal(t, entities.Petroglyph, got.Classification)
	assert.Equal(t, 3.2, got.DepthMM)
	assert.Equal(t, 150.0, got.LengthMM)
	assert.Equal(t, "granite", got.SupportMaterial)
	assert.True(t, got.HasRecognizablePatterns)
	assert.Equal(t, 2, got.PatternCount)
	assert.True(t, got.HasStraightLines)
	assert.Equal(t, "spirals near the stream", got.Notes)
	assert.False(t, got.CreatedAt.IsZero())

	assert.Equal(t, second.ID, list[1].ID)
	assert.Nil(t, list[1].Latitude)
	assert.Nil(t, list[1].Longitude)
}

func TestInsert_IDsNeverReused(t *testing.T) {
	r, path := newRepo(t)
	ctx := context.Background()

	a := &entities.Finding{Classification: entities.Other}
	require.NoError(t, r.Insert(ctx, a))

	// remove the row behind the store's back; AUTOINCREMENT must not hand the id out again
	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`DELETE FROM findings`).Error)
	require.NoError(t, database.Close(db))

	b := &entities.Finding{Classification: entities.Other}
	require.NoError(t, r.Insert(ctx, b))
	assert.Greater(t, b.ID, a.ID)
}

func TestInsert_StorageFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	r := New(filepath.Join(dir, "missing", "nested", "findings.db"))

	err := r.Insert(context.Background(), &entities.Finding{Classification: entities.Axe})
	require.Error(t, err)
}

func TestInitialize_KeepsExistingRows(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &entities.Finding{Classification: entities.StoneTool}))
	require.NoError(t, r.Initialize(ctx))

	list, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPing(t *testing.T) {
	r, path := newRepo(t)
	require.NoError(t, r.Ping(context.Background()))

	_, err := os.Stat(path)
	require.NoError(t, err)
}
