package table

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    [][]float64
		wantErr bool
	}{
		{
			"velocity with index",
			"1 103.1 30.2 -4.5\n2 103.2 30.3 1e-2\n",
			[][]float64{{1, 103.1, 30.2, -4.5}, {2, 103.2, 30.3, 0.01}},
			false,
		},
		{
			"tabs comments and blank lines",
			"# lon lat vel\n\n103.1\t30.2\t-4.5\n  103.2   30.3 2 # last\n",
			[][]float64{{103.1, 30.2, -4.5}, {103.2, 30.3, 2}},
			false,
		},
		{
			"ragged rows",
			"1 2 3\n1 2\n",
			nil,
			true,
		},
		{
			"non numeric token",
			"1 2 3\n1 x 3\n",
			nil,
			true,
		},
		{
			"empty",
			"\n# nothing\n",
			nil,
			true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Load(strings.NewReader(tt.in))
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrFormat))
				return
			}
			require.NoError(t, err)
			if !cmp.Equal(Rows(got), tt.want) {
				t.Errorf("Load() got = %v, want %v", Rows(got), tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	var b bytes.Buffer
	err := Write(&b, [][]float64{{1, 103.123456789, -30.5}, {20170101, 0, 12345.5}})
	require.NoError(t, err)
	require.Equal(t, "1.000000 103.123457 -30.500000\n20170101.000000 0.000000 12345.500000\n", b.String())
}

func TestWriteFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vel_cut.txt")
	rows := [][]float64{{0, 103.25, 30.5, -2.125}, {3, 103.75, 30.25, 4}}

	require.NoError(t, WriteFile(path, rows))

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, rows, Rows(got))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("T")
	require.NoError(t, err)
	require.Equal(t, TimeSeries, k)
	require.Equal(t, "ts", k.Suffix())

	k, err = ParseKind("v")
	require.NoError(t, err)
	require.Equal(t, Velocity, k)
	require.Equal(t, "vel", k.Suffix())

	_, err = ParseKind("x")
	require.Error(t, err)
}
