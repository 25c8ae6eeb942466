package types

import (
	"context"

	"jobwatch/internal/domain"
	"jobwatch/internal/seen"
)

// Fetcher is implemented by each job source. Fetch marks newly found job ids
// in the store and returns only the jobs that were not seen before.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, store *seen.Store) ([]domain.NewJob, error)
}
