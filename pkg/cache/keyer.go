package cache

// keyVersion is bumped whenever the cached payload layout changes.
const keyVersion = "v1"

// Keyer builds cache keys.
type Keyer interface {
	// PlacementKey identifies the placement of a scenario under planner
	// options. scenarioHash is the content hash of the normalized scenario;
	// options is any JSON-encodable value describing the planner setup.
	PlacementKey(scenarioHash string, options any) string
}

// DefaultKeyer derives keys from SHA-256 hashes of their components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlacementKey implements Keyer.
func (DefaultKeyer) PlacementKey(scenarioHash string, options any) string {
	return hashKey("placement:"+keyVersion, scenarioHash, options)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
