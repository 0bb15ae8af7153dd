package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/domain/repository"
	"github.com/route-estimation-service/internal/pkg/errors"
)

type stopSource struct {
	db        *sqlx.DB
	districts []string
	logger    *zap.Logger
}

// NewStopSource loads the catalog dataset from the bus_stops table. A
// non-empty districts list narrows the load to those districts.
func NewStopSource(db *DB, districts []string) repository.StopSource {
	return &stopSource{
		db:        db.DB,
		districts: districts,
		logger:    db.logger,
	}
}

func (s *stopSource) LoadStops(ctx context.Context) ([]domain.Stop, error) {
	query := `
		SELECT
			bus_stop_id::text AS bus_stop_id,
			name,
			lat,
			lon,
			COALESCE(district, '') AS district,
			COALESCE(category, 'regular') AS category,
			COALESCE(demand_multiplier, 0) AS demand_multiplier
		FROM bus_stops
	`

	var args []interface{}
	if len(s.districts) > 0 {
		lowered := make([]string, len(s.districts))
		for i, d := range s.districts {
			lowered[i] = strings.ToLower(d)
		}
		query += " WHERE lower(district) = ANY($1)"
		args = append(args, pq.Array(lowered))
	}
	query += " ORDER BY bus_stop_id"

	var stops []domain.Stop
	if err := s.db.SelectContext(ctx, &stops, query, args...); err != nil {
		s.logger.Error("Failed to load bus stops", zap.Error(err))
		return nil, errors.Wrap(errors.ErrCatalogLoadFailure.WithMessage("bus_stops query failed"), err)
	}

	s.logger.Info("stop dataset loaded",
		zap.Int("stops", len(stops)),
		zap.Strings("districts", s.districts))

	return stops, nil
}
