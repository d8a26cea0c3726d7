package sarcut

const (
	RayCastStrategy = "raycast"
	S2Strategy      = "s2"
)

// Index answers containment queries against one region
type Index interface {
	// Contains returns true if the point lng lat is inside the region
	Contains(lng, lat float64) bool
}

// BBoxFilter is the cheap rejection done before any Index query
type BBoxFilter interface {
	// MayContain returns false when the point can't be inside the region
	MayContain(lng, lat float64) bool
}
