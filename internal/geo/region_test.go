package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinFlorida(t *testing.T) {
	region, err := Builtin("florida")
	require.NoError(t, err)
	assert.Equal(t, "florida", region.Name())

	tests := []struct {
		name string
		lat  float64
		lon  float64
		want bool
	}{
		{name: "orlando", lat: 28.5, lon: -81.4, want: true},
		{name: "tampa", lat: 27.9, lon: -82.5, want: true},
		{name: "miami", lat: 25.8, lon: -80.2, want: true},
		{name: "atlanta", lat: 33.7, lon: -84.4, want: false},
		{name: "open gulf", lat: 27.0, lon: -85.0, want: false},
		{name: "open atlantic", lat: 28.0, lon: -78.0, want: false},
		{name: "havana", lat: 23.1, lon: -82.4, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, region.Contains(tt.lat, tt.lon))
		})
	}
}

func TestBuiltinCaseInsensitive(t *testing.T) {
	region, err := Builtin("Florida")
	require.NoError(t, err)
	assert.Equal(t, "florida", region.Name())
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "atlantis")
	assert.Contains(t, err.Error(), "florida")
}

func TestBuiltinNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"florida", "gulf-coast", "texas"}, BuiltinNames())
}

func TestFromGeoJSON(t *testing.T) {
	// A unit square around the origin, in each accepted document shape.
	polygon := `{"type":"Polygon","coordinates":[[[-1,-1],[1,-1],[1,1],[-1,1],[-1,-1]]]}`

	tests := []struct {
		name string
		doc  string
	}{
		{name: "bare geometry", doc: polygon},
		{name: "feature", doc: `{"type":"Feature","properties":{},"geometry":` + polygon + `}`},
		{name: "feature collection", doc: `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":` + polygon + `}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, err := FromGeoJSON("square", []byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, "square", region.Name())
			assert.True(t, region.Contains(0, 0))
			assert.False(t, region.Contains(2, 2))
		})
	}
}

func TestFromGeoJSONRejectsNonPolygonal(t *testing.T) {
	_, err := FromGeoJSON("point", []byte(`{"type":"Point","coordinates":[0,0]}`))
	require.Error(t, err)
}

func TestFromGeoJSONRejectsGarbage(t *testing.T) {
	_, err := FromGeoJSON("bad", []byte(`{not json`))
	require.Error(t, err)
}

// countingRegion counts Contains calls to verify cache behavior.
type countingRegion struct {
	Region
	calls int
}

func (c *countingRegion) Contains(lat, lon float64) bool {
	c.calls++
	return c.Region.Contains(lat, lon)
}

func TestCachedRegionAvoidsRepeatLookups(t *testing.T) {
	inner, err := Builtin("florida")
	require.NoError(t, err)
	counting := &countingRegion{Region: inner}
	cached := NewCachedRegion(counting, 16)

	assert.True(t, cached.Contains(28.5, -81.4))
	assert.True(t, cached.Contains(28.5, -81.4))
	assert.True(t, cached.Contains(28.5, -81.4))
	assert.Equal(t, 1, counting.calls)

	assert.False(t, cached.Contains(33.7, -84.4))
	assert.Equal(t, 2, counting.calls)
	assert.Equal(t, "florida", cached.Name())
}

func TestCachedRegionEvictsLeastRecentlyUsed(t *testing.T) {
	inner, err := Builtin("florida")
	require.NoError(t, err)
	counting := &countingRegion{Region: inner}
	cached := NewCachedRegion(counting, 2)

	cached.Contains(28.5, -81.4)
	cached.Contains(27.9, -82.5)
	cached.Contains(25.8, -80.2) // evicts the orlando entry
	require.Equal(t, 3, counting.calls)

	cached.Contains(28.5, -81.4)
	assert.Equal(t, 4, counting.calls)
}
