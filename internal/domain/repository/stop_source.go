package repository

import (
	"context"

	"github.com/route-estimation-service/internal/domain"
)

// StopSource loads the stop dataset the catalog is built from. Implementations
// read a JSON extract or a Postgres table; either way the load happens once,
// at startup.
type StopSource interface {
	// LoadStops returns every stop in the dataset.
	LoadStops(ctx context.Context) ([]domain.Stop, error)
}
