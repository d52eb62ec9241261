package analysis

import "errors"

var (
	// ErrNoPath is returned when no path exists between the sampled
	// nodes, or when the graph holds fewer than two nodes to sample.
	ErrNoPath = errors.New("no path between sampled nodes")

	// ErrInvalidGrowthParams is returned when runs or layers are out
	// of range for the growth test.
	ErrInvalidGrowthParams = errors.New("growth runs must be >= 1 and layers >= 0")
)
