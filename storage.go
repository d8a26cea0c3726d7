package sarcut

import (
	"fmt"
	"time"
)

// Store gives access to regions previously indexed
type Store interface {
	LoadRegion(id uint32) (*Region, error)
	LoadAllRegions(add func(*Region) error) error
	LoadIndexInfos() (*IndexInfos, error)
}

// RegionStorage on disk storage of a region
type RegionStorage struct {
	Name string

	// Coords flat lng lat of the closed ring
	Coords []float64
}

// IndexInfos used to store information about the index in DB
type IndexInfos struct {
	Filename       string
	IndexTime      time.Time
	IndexerVersion string
	RegionCount    uint32
}

func (infos *IndexInfos) String() string {
	return fmt.Sprintf("Filename: %s\nIndexTime: %s\nIndexerVersion: %s\nRegionCount %d\n",
		infos.Filename,
		infos.IndexTime,
		infos.IndexerVersion,
		infos.RegionCount,
	)
}
