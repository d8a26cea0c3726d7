package s2index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/insartools/sarcut"
)

func TestIndex_Contains(t *testing.T) {
	cw, err := sarcut.NewRegion(0, "cw-0", []float64{
		103.0, 30.0, 103.0, 31.0, 104.0, 31.0, 104.0, 30.0,
	})
	require.NoError(t, err)
	ccw, err := sarcut.NewRegion(1, "ccw-1", []float64{
		103.0, 30.0, 104.0, 30.0, 104.0, 31.0, 103.0, 31.0, 103.0, 30.0,
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		lng, lat float64
		want     bool
	}{
		{"center", 103.5, 30.5, true},
		{"east", 104.5, 30.5, false},
		{"south", 103.5, 29.5, false},
		{"antipode", -76.5, -30.5, false},
	}

	for _, r := range []*sarcut.Region{cw, ccw} {
		idx := New(r)
		for _, tt := range tests {
			require.Equal(t, tt.want, idx.Contains(tt.lng, tt.lat), "%s %s", r.Name, tt.name)
		}
		require.True(t, idx.MayContain(103.5, 30.5))
		require.False(t, idx.MayContain(110, 30.5))
	}
}

func TestIndex_Degenerate(t *testing.T) {
	r, err := sarcut.NewRegion(0, "line-0", []float64{103, 30, 104, 31})
	require.NoError(t, err)

	idx := New(r)
	require.False(t, idx.Contains(103.5, 30.5))
	require.False(t, idx.MayContain(103.5, 30.5))
}
