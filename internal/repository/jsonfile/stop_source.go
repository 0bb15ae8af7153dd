package jsonfile

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/domain/repository"
	"github.com/route-estimation-service/internal/pkg/errors"
)

// StopSource reads the stop dataset from a JSON extract. The file layout is
// the one produced by the offline pipeline: a top-level array of objects
// keyed bus_stop_id, name, lat, lon and optionally district, category and
// demand_multiplier.
type StopSource struct {
	path   string
	logger *zap.Logger
}

// NewStopSource creates a file-backed stop source.
func NewStopSource(path string, logger *zap.Logger) repository.StopSource {
	return &StopSource{
		path:   path,
		logger: logger,
	}
}

// stopID tolerates both string and numeric ids - older extracts carry the
// raw OSM node id as a number.
type stopID string

func (id *stopID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = stopID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = stopID(n.String())
	return nil
}

type stopRecord struct {
	ID         stopID  `json:"bus_stop_id"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	District   string  `json:"district"`
	Category   string  `json:"category"`
	Popularity float64 `json:"demand_multiplier"`
}

// LoadStops reads and decodes the dataset. Popularity defaults are left to
// the catalog, which derives them from category and district.
func (s *StopSource) LoadStops(ctx context.Context) ([]domain.Stop, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCatalogLoadFailure.WithMessage("cannot read stop dataset: "+s.path), err)
	}

	var records []stopRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCatalogLoadFailure.WithMessage("malformed stop dataset: "+s.path), err)
	}

	stops := make([]domain.Stop, 0, len(records))
	for _, rec := range records {
		category := rec.Category
		if category == "" {
			category = domain.CategoryRegular
		}
		stops = append(stops, domain.Stop{
			ID:         string(rec.ID),
			Name:       rec.Name,
			Latitude:   rec.Lat,
			Longitude:  rec.Lon,
			District:   rec.District,
			Category:   category,
			Popularity: rec.Popularity,
		})
	}

	s.logger.Info("stop dataset loaded",
		zap.String("path", s.path),
		zap.Int("stops", len(stops)))

	return stops, nil
}
