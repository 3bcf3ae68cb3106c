package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofoto/entities"
)

func ptr(v float64) *float64 { return &v }

func TestBuild_Empty(t *testing.T) {
	v := Build(nil)
	assert.True(t, v.Empty)
	assert.Equal(t, EmptyPlaceholder, v.Placeholder)
	assert.Empty(t, v.Markers)
}

func TestBuild_CentresOnFirst(t *testing.T) {
	pts := []Point{
		{Lat: 41.38, Lon: 2.17, Label: "#1 Petroglyph"},
		{Lat: -12.04, Lon: -77.04, Label: "#2 Axe"},
	}
	v := Build(pts)
	assert.False(t, v.Empty)
	assert.Equal(t, pts[0], v.Center)
	assert.Len(t, v.Markers, 2)
	assert.Empty(t, v.Placeholder)
}

func TestFromFindings_SkipsUnlocated(t *testing.T) {
	fs := []entities.Finding{
		{ID: 1, Classification: entities.Axe},
		{ID: 2, Classification: entities.ProjectilePoint, Latitude: ptr(0), Longitude: ptr(0)},
		{ID: 3, Classification: entities.Other, Latitude: ptr(10)},
		{ID: 4, Classification: entities.Petroglyph, Latitude: ptr(41.3833), Longitude: ptr(2.1667)},
	}

	pts := FromFindings(fs)
	require.Len(t, pts, 2)
	assert.Equal(t, Point{Lat: 0, Lon: 0, Label: "#2 Projectile point"}, pts[0])
	assert.Equal(t, "#4 Petroglyph", pts[1].Label)

	v := Build(pts)
	assert.Equal(t, pts[0], v.Center)
}

func TestFromFindings_NoneLocated(t *testing.T) {
	pts := FromFindings([]entities.Finding{{ID: 1, Classification: entities.Axe}})
	assert.NotNil(t, pts)
	assert.True(t, Build(pts).Empty)
}
