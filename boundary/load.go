// Package boundary loads the areas of interest used to cut tables:
// KML, KMZ, GeoJSON documents or a region store built by regionindexer.
package boundary

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/go-kit/kit/log"
	"github.com/pkg/errors"

	"github.com/insartools/sarcut"
	"github.com/insartools/sarcut/storage/bbolt"
)

// ErrParse is returned for boundary documents without usable polygons
var ErrParse = errors.New("invalid boundary")

// Load reads the regions of the boundary file at path, the format is chosen by extension
func Load(path string) (sarcut.RegionSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kml":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rs, err := DecodeKML(f)
		return rs, errors.Wrapf(err, "can't load %s", path)
	case ".kmz":
		rs, err := LoadKMZ(path)
		return rs, errors.Wrapf(err, "can't load %s", path)
	case ".geojson", ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rs, err := DecodeGeoJSON(f)
		return rs, errors.Wrapf(err, "can't load %s", path)
	case ".db":
		return LoadStore(path)
	}
	return nil, errors.Wrapf(ErrParse, "unknown boundary format %s", path)
}

// LoadStore reads every region of a region store
func LoadStore(path string) (sarcut.RegionSet, error) {
	// bbolt would create a missing file even read only
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	storage, clean, err := bbolt.NewROStorage(path, log.NewNopLogger())
	if err != nil {
		return nil, err
	}
	defer clean()

	var rs sarcut.RegionSet
	err = storage.LoadAllRegions(func(r *sarcut.Region) error {
		rs = append(rs, r)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't load regions from %s", path)
	}
	if len(rs) == 0 {
		return nil, errors.Wrapf(ErrParse, "no region in %s", path)
	}

	return rs, nil
}
