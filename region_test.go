package sarcut

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/require"
)

func TestNewRegion(t *testing.T) {
	tests := []struct {
		name       string
		coords     []float64
		wantRing   []float64
		degenerate bool
		wantErr    bool
	}{
		{
			"closed ring",
			[]float64{0, 0, 0, 1, 1, 1, 0, 0},
			[]float64{0, 0, 0, 1, 1, 1, 0, 0},
			false,
			false,
		},
		{
			"open ring gets closed",
			[]float64{0, 0, 0, 1, 1, 1},
			[]float64{0, 0, 0, 1, 1, 1, 0, 0},
			false,
			false,
		},
		{
			"two distinct vertices",
			[]float64{0, 0, 1, 1, 0, 0, 1, 1},
			[]float64{0, 0, 1, 1, 0, 0, 1, 1, 0, 0},
			true,
			false,
		},
		{
			"single vertex",
			[]float64{3, 4},
			[]float64{3, 4},
			true,
			false,
		},
		{"odd coordinates", []float64{0, 0, 1}, nil, false, true},
		{"no coordinates", nil, nil, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := NewRegion(1, "test-1", tt.coords)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantRing, r.Ring())
			require.Equal(t, tt.degenerate, r.Degenerate())
		})
	}
}

func TestRegion_BBox(t *testing.T) {
	r, err := NewRegion(0, "test-0", []float64{103.5, 30.25, 104, 31, 102.75, 30.5})
	require.NoError(t, err)

	xmin, xmax, ymin, ymax := r.BBox()
	require.Equal(t, 102.75, xmin)
	require.Equal(t, 104.0, xmax)
	require.Equal(t, 30.25, ymin)
	require.Equal(t, 31.0, ymax)
	require.Equal(t, 4, r.NumVertices())
}

func TestLoopFromCoordinates(t *testing.T) {
	inside := s2.PointFromLatLng(s2.LatLngFromDegrees(30.5, 103.5))
	outside := s2.PointFromLatLng(s2.LatLngFromDegrees(35, 103.5))

	// clockwise and counter clockwise rings describe the same area
	for _, c := range [][]float64{
		{103, 30, 103, 31, 104, 31, 104, 30, 103, 30},
		{103, 30, 104, 30, 104, 31, 103, 31, 103, 30},
	} {
		l := LoopFromCoordinates(c)
		require.NotNil(t, l)
		require.Equal(t, 4, l.NumVertices())
		require.True(t, l.ContainsPoint(inside))
		require.False(t, l.ContainsPoint(outside))
	}

	require.Nil(t, LoopFromCoordinates([]float64{1, 2, 3}))
}

func TestKeys(t *testing.T) {
	require.Equal(t, []byte{'R', 0, 0, 1, 2}, RegionKey(258))
	require.Equal(t, []byte{'i'}, InfoKey())
}
