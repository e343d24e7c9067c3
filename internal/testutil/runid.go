package testutil

// FixedRunIDGenerator generates the same run ID every time.
//
// Batch reports embed the run ID, so a fixed one keeps golden reports
// byte-identical across runs.
//
// Thread-safety: FixedRunIDGenerator is stateless and safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a new fixed run ID generator.
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run ID.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
