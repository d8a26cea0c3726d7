package raycast

import "fmt"

// BBox axis aligned bounding box of a ring
type BBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Bounds computes the bounding box of a flat lng lat ring
func Bounds(ring []float64) BBox {
	if len(ring) < 2 {
		return BBox{}
	}
	b := BBox{
		MinX: ring[0], MaxX: ring[0],
		MinY: ring[1], MaxY: ring[1],
	}
	for i := 2; i+1 < len(ring); i += 2 {
		x, y := ring[i], ring[i+1]
		if x < b.MinX {
			b.MinX = x
		}
		if x > b.MaxX {
			b.MaxX = x
		}
		if y < b.MinY {
			b.MinY = y
		}
		if y > b.MaxY {
			b.MaxY = y
		}
	}
	return b
}

// Contains uses strict inequalities: a point lying on the box border is rejected,
// even when the ring itself would count it as inside.
func (b BBox) Contains(x, y float64) bool {
	return b.MinX < x && x < b.MaxX && b.MinY < y && y < b.MaxY
}

func (b BBox) String() string {
	return fmt.Sprintf("[%f,%f]x[%f,%f]", b.MinX, b.MaxX, b.MinY, b.MaxY)
}
