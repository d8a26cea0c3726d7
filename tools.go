package sarcut

import (
	"encoding/binary"
	"math"

	"github.com/golang/geo/s2"
)

const (
	regionPrefix = 'R'
	infoKey      = 'i'
)

// LoopFromCoordinates creates a loop from a list of lng lat
func LoopFromCoordinates(c []float64) *s2.Loop {
	if len(c)%2 != 0 || len(c) < 2*3 {
		return nil
	}
	points := make([]s2.Point, len(c)/2)

	for i := 0; i < len(c); i += 2 {
		points[i/2] = s2.PointFromLatLng(s2.LatLngFromDegrees(c[i+1], c[i]))
	}

	if points[0] == points[len(points)-1] {
		// remove last item if same as 1st
		points = points[:len(points)-1]
	}

	loop := s2.LoopFromPoints(points)

	// rings from KML have no guaranteed orientation, s2 expects CCW
	if loop.Area() > 2*math.Pi {
		loop.Invert()
	}
	return loop
}

// RegionFromStorage rebuilds a region read back from a store
func RegionFromStorage(id uint32, rs *RegionStorage) (*Region, error) {
	return NewRegion(id, rs.Name, rs.Coords)
}

// RegionKey is the store key of a region
func RegionKey(id uint32) []byte {
	k := make([]byte, 1+4)
	k[0] = regionPrefix
	binary.BigEndian.PutUint32(k[1:], id)
	return k
}

// RegionPrefix is the key prefix shared by all regions
func RegionPrefix() byte {
	return regionPrefix
}

func InfoKey() []byte {
	return []byte{infoKey}
}
