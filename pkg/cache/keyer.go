package cache

// ArtifactKeyOpts are the render parameters that select one artifact.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	FontSize      float64 `json:"font_size"`
	LaneWidth     float64 `json:"lane_width"`
	ZoomRadius    int     `json:"zoom_radius"`
	AcceptorLanes bool    `json:"acceptor_lanes"`
	StyleHash     string  `json:"style_hash"` // hash of palette and grid
}

// Keyer builds cache keys.
type Keyer interface {
	// DatasetKey returns the key of a dataset document by content hash.
	DatasetKey(datasetHash string) string
	// ArtifactKey returns the key of one rendered artifact.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DatasetKey implements [Keyer].
func (DefaultKeyer) DatasetKey(datasetHash string) string {
	return "dataset:" + datasetHash
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}
