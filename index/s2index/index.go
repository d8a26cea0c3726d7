package s2index

import (
	"github.com/golang/geo/s2"

	"github.com/insartools/sarcut"
)

// Index using an s2.Loop, edges are geodesics not straight lng lat lines,
// results may differ from the raycast strategy near long edges
type Index struct {
	loop *s2.Loop
	rect s2.Rect
}

func New(r *sarcut.Region) *Index {
	if r.Degenerate() {
		return &Index{}
	}
	l := sarcut.LoopFromCoordinates(r.Ring())
	return &Index{
		loop: l,
		rect: l.RectBound(),
	}
}

// MayContain returns false for points outside the loop bounding rect
func (idx *Index) MayContain(lng, lat float64) bool {
	if idx.loop == nil {
		return false
	}
	return idx.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lng))
}

// Contains returns true if lng lat is inside the loop
func (idx *Index) Contains(lng, lat float64) bool {
	if idx.loop == nil {
		return false
	}
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	return idx.loop.ContainsPoint(p)
}
