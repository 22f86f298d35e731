package cache

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey identifies a layout of a dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a layout's result.
type LayoutKeyOpts struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	PaddingTop  float64 `json:"padding_top"`
	PaddingLeft float64 `json:"padding_left"`
	Ticks       int     `json:"ticks"`
	Seed        uint64  `json:"seed"`
	Strict      bool    `json:"strict"`
	SavedHash   string  `json:"saved_hash,omitempty"` // hash of the persisted category positions
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Labels bool    `json:"labels"`
	Scale  float64 `json:"scale,omitempty"` // raster scale, PNG only
}

// DefaultKeyer builds keys of the form "stage:sha256(...)".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
