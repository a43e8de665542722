// Package store defines the interface to the hazard-database backing
// store. A store supplies three bulk mappings on load and on each refresh:
// hazard records, safe-alternative suggestions, and category descriptions.
// The matching core never writes through this interface; refresh is an
// external collaborator's job.
package store

import (
	"context"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/hazard"
)

// Store loads hazard datasets from a backing source.
type Store interface {
	// LoadSnapshot reads the full dataset. Implementations degrade a
	// missing or malformed source to an empty dataset rather than
	// failing, so analysis can proceed with all-candidates-safe.
	LoadSnapshot(ctx context.Context) (hazard.Dataset, error)

	Close() error
}
