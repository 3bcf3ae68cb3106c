package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"geofoto/entities"
)

func TestWriteXLSX(t *testing.T) {
	lat, lon := 41.3833, 2.1667
	fs := []entities.Finding{
		{
			ID: 1, Latitude: &lat, Longitude: &lon,
			Classification: entities.Petroglyph, DepthMM: 3.5, LengthMM: 120,
			SupportMaterial: "granite", HasRecognizablePatterns: true, PatternCount: 2,
			Notes:     "spiral motif",
			CreatedAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		},
		{ID: 2, Classification: entities.Axe},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, fs))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()

	rows, err := x.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Classification", rows[0][4])
	assert.Equal(t, []string{"1", "2024-05-01 10:30:00", "41.3833", "2.1667", "Petroglyph", "3.5", "120", "granite", "TRUE", "2", "FALSE", "spiral motif"}, rows[1])
	assert.Equal(t, "2", rows[2][0])
	assert.Empty(t, rows[2][2], "unknown latitude stays blank")
	assert.Equal(t, "Axe", rows[2][4])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()

	rows, err := x.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
