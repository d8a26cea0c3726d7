package boundary

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	log "github.com/go-kit/kit/log"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/insartools/sarcut/storage/bbolt"
)

func TestLoad_KML(t *testing.T) {
	rs, err := Load("testdata/cut_multi.kml")
	require.NoError(t, err)

	if !cmp.Equal(rs.Names(), []string{"west-0", "east-1", "west-2"}) {
		t.Errorf("Load() names = %v", rs.Names())
	}

	require.Equal(t, []float64{0, 0, 0, 10, 10, 10, 10, 0, 0, 0}, rs[0].Ring())
	require.Equal(t, []float64{20, 0, 20, 10, 30, 10, 30, 0, 20, 0}, rs[1].Ring())
	// altitude dropped and ring closed
	require.Equal(t, []float64{40, 0, 45, 10, 50, 0, 40, 0}, rs[2].Ring())

	xmin, xmax, ymin, ymax := rs[1].BBox()
	require.Equal(t, []float64{20, 30, 0, 10}, []float64{xmin, xmax, ymin, ymax})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"placemark without polygon", "testdata/no_polygon.kml"},
		{"no placemark", "testdata/empty.kml"},
		{"malformed coordinates", "testdata/bad_coords.kml"},
		{"unknown format", "testdata/cut.shp"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(tt.path)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrParse), "got %v", err)
		})
	}

	_, err := Load("testdata/missing.kml")
	require.Error(t, err)
	require.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestLoad_KMZ(t *testing.T) {
	dir := t.TempDir()
	kmzPath := filepath.Join(dir, "cut_multi.kmz")
	writeKMZ(t, kmzPath, "testdata/cut_multi.kml")

	tmpBefore, err := filepath.Glob(filepath.Join(os.TempDir(), "sarcut-*.kml"))
	require.NoError(t, err)

	rs, err := Load(kmzPath)
	require.NoError(t, err)
	require.Equal(t, []string{"west-0", "east-1", "west-2"}, rs.Names())

	// the extracted document is removed
	tmpAfter, err := filepath.Glob(filepath.Join(os.TempDir(), "sarcut-*.kml"))
	require.NoError(t, err)
	require.Equal(t, len(tmpBefore), len(tmpAfter))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestLoad_KMZBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.kmz")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrParse))
}

func TestLoad_GeoJSON(t *testing.T) {
	rs, err := Load("testdata/areas.geojson")
	require.NoError(t, err)
	require.Equal(t, []string{"reservoir-0", "Feature-1", "Feature-2"}, rs.Names())
	require.Equal(t, []float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0}, rs[0].Ring())
	require.Equal(t, []float64{20, 0, 30, 0, 30, 10, 20, 0}, rs[1].Ring())
}

func TestLoad_Store(t *testing.T) {
	rs, err := Load("testdata/cut_multi.kml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "regions.db")
	storage, clean, err := bbolt.NewStorage(path, log.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, storage.Index(rs, "cut_multi.kml", "unittest"))
	require.NoError(t, clean())

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, rs.Names(), got.Names())
	for i := range rs {
		require.Equal(t, rs[i].Ring(), got[i].Ring())
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
}

func writeKMZ(t *testing.T, kmzPath, kmlPath string) {
	t.Helper()

	doc, err := os.ReadFile(kmlPath)
	require.NoError(t, err)

	f, err := os.Create(kmzPath)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("doc.kml")
	require.NoError(t, err)
	_, err = w.Write(doc)
	require.NoError(t, err)
	w, err = zw.Create("files/legend.png")
	require.NoError(t, err)
	_, err = w.Write([]byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}
