// Package raycast implements the even-odd point in polygon test used to cut tables.
//
// A point exactly on an edge or a vertex gets whatever answer the crossing
// rules below produce: the left and bottom edges of an axis aligned square
// are outside, the right and top edges are inside. This is kept as is,
// previously produced cuts depend on it.
package raycast

import (
	"github.com/insartools/sarcut"
)

// Index ray casting index over one region ring
type Index struct {
	ring       []float64
	bbox       BBox
	degenerate bool
}

// New returns an Index for region r, the ring and its bounding box are computed once
func New(r *sarcut.Region) *Index {
	ring := r.Ring()
	return &Index{
		ring:       ring,
		bbox:       Bounds(ring),
		degenerate: r.Degenerate(),
	}
}

// BBox returns the region bounding box
func (idx *Index) BBox() BBox {
	return idx.bbox
}

// MayContain bounding box prefilter
func (idx *Index) MayContain(lng, lat float64) bool {
	return idx.bbox.Contains(lng, lat)
}

// Contains exact test, not prefiltered
func (idx *Index) Contains(lng, lat float64) bool {
	if idx.degenerate {
		return false
	}
	return InPolygon(lng, lat, idx.ring)
}

// Intersect returns true if the rightward horizontal ray starting at x, y
// crosses the segment from (sx, sy) to (ex, ey).
// The order of the rules matters for points lying on the segment.
func Intersect(x, y, sx, sy, ex, ey float64) bool {
	// horizontal segment, never crossed, even when the ray runs along it
	if sy == ey {
		return false
	}
	// segment above the ray
	if sy > y && ey > y {
		return false
	}
	// segment below the ray
	if sy < y && ey < y {
		return false
	}
	// ray touches the lower start vertex
	if sy == y && ey > y {
		return false
	}
	// ray touches the lower end vertex
	if ey == y && sy > y {
		return false
	}
	// segment left of the point
	if sx < x && ex < x {
		return false
	}

	xseg := ex - (ex-sx)*(ey-y)/(ey-sy)
	// intersection left of the point
	if xseg < x {
		return false
	}

	return true
}

// InPolygon returns true if x, y is inside the flat lng lat ring.
// The ring must be closed: the last vertex repeats the first one,
// the edges are (v[i], v[i+1]) for i in 0..n-2.
func InPolygon(x, y float64, ring []float64) bool {
	var crossings int
	for i := 0; i+3 < len(ring); i += 2 {
		if Intersect(x, y, ring[i], ring[i+1], ring[i+2], ring[i+3]) {
			crossings++
		}
	}
	return crossings%2 == 1
}
