package sarcut

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
)

// Region is one named area of interest, the outer ring of a boundary polygon
type Region struct {
	ID   uint32
	Name string

	// Polygon holds a single closed XY ring, lng then lat
	Polygon *geom.Polygon
}

// RegionSet is an ordered list of regions, in boundary document order
type RegionSet []*Region

// NewRegion creates a region from a list of lng lat,
// the ring is closed if the last vertex differs from the first one
func NewRegion(id uint32, name string, c []float64) (*Region, error) {
	if len(c)%2 != 0 {
		return nil, errors.New("invalid ring odd coordinates number")
	}
	if len(c) == 0 {
		return nil, errors.New("invalid ring no coordinates")
	}

	flat := make([]float64, len(c), len(c)+2)
	copy(flat, c)
	n := len(flat)
	if flat[0] != flat[n-2] || flat[1] != flat[n-1] {
		flat = append(flat, flat[0], flat[1])
	}

	p := geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})

	return &Region{
		ID:      id,
		Name:    name,
		Polygon: p,
	}, nil
}

// Ring returns the flat lng lat coordinates of the ring, closing vertex included
func (r *Region) Ring() []float64 {
	return r.Polygon.LinearRing(0).FlatCoords()
}

// NumVertices returns the vertex count of the ring, closing vertex included
func (r *Region) NumVertices() int {
	return r.Polygon.LinearRing(0).NumCoords()
}

// Degenerate reports a ring with less than 3 distinct vertices,
// nothing can be inside such a ring
func (r *Region) Degenerate() bool {
	ring := r.Ring()
	seen := make(map[[2]float64]struct{}, len(ring)/2)
	for i := 0; i < len(ring); i += 2 {
		seen[[2]float64{ring[i], ring[i+1]}] = struct{}{}
		if len(seen) >= 3 {
			return false
		}
	}
	return true
}

// BBox returns the ring bounding box as x min, x max, y min, y max
func (r *Region) BBox() (xmin, xmax, ymin, ymax float64) {
	b := r.Polygon.Bounds()
	return b.Min(0), b.Max(0), b.Min(1), b.Max(1)
}

func (r *Region) String() string {
	xmin, xmax, ymin, ymax := r.BBox()
	return fmt.Sprintf("%s (%d vertices) [%f,%f]x[%f,%f]",
		r.Name, r.NumVertices(), xmin, xmax, ymin, ymax)
}

// Names returns the region names in order
func (rs RegionSet) Names() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}
