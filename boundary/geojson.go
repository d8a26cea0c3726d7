package boundary

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/insartools/sarcut"
)

// DecodeGeoJSON reads a FeatureCollection, each Polygon and each polygon of a
// MultiPolygon becomes a region, only outer rings are used
func DecodeGeoJSON(r io.Reader) (sarcut.RegionSet, error) {
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}

	var rs sarcut.RegionSet
	for _, f := range fc.Features {
		if f.Geometry == nil {
			return nil, errors.Wrap(ErrParse, "invalid geometry")
		}

		var polys []*geom.Polygon
		switch g := f.Geometry.(type) {
		case *geom.Polygon:
			polys = append(polys, g)
		case *geom.MultiPolygon:
			for i := 0; i < g.NumPolygons(); i++ {
				polys = append(polys, g.Polygon(i))
			}
		default:
			return nil, errors.Wrapf(ErrParse, "unsupported geometry type %T", g)
		}

		for _, p := range polys {
			if p.NumLinearRings() == 0 {
				return nil, errors.Wrap(ErrParse, "polygon without ring")
			}
			id := uint32(len(rs))
			name := featureName(f) + "-" + strconv.Itoa(int(id))
			region, err := sarcut.NewRegion(id, name, xyCoords(p.LinearRing(0)))
			if err != nil {
				return nil, errors.Wrapf(ErrParse, "feature %s: %v", name, err)
			}
			rs = append(rs, region)
		}
	}

	if len(rs) == 0 {
		return nil, errors.Wrap(ErrParse, "no polygon found")
	}

	return rs, nil
}

func featureName(f *geojson.Feature) string {
	switch n := f.Properties["name"].(type) {
	case nil:
	case string:
		if n != "" {
			return n
		}
	default:
		return fmt.Sprint(n)
	}
	if f.ID != "" {
		return f.ID
	}
	return "Feature"
}

// xyCoords drops any Z or M dimension
func xyCoords(lr *geom.LinearRing) []float64 {
	stride := lr.Stride()
	flat := lr.FlatCoords()
	c := make([]float64, 0, 2*len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		c = append(c, flat[i], flat[i+1])
	}
	return c
}
