package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/pkg/errors"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stops.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStopSource_LoadStops(t *testing.T) {
	logger := zap.NewNop()

	t.Run("decodes full records", func(t *testing.T) {
		path := writeDataset(t, `[
			{"bus_stop_id": "TVM-001", "name": "Thampanoor Central", "lat": 8.4875, "lon": 76.9520,
			 "district": "thiruvananthapuram", "category": "transport_hub", "demand_multiplier": 2.0},
			{"bus_stop_id": "EKM-005", "name": "Fort Kochi", "lat": 9.9639, "lon": 76.2424,
			 "district": "ernakulam", "category": "tourist", "demand_multiplier": 1.5}
		]`)

		src := NewStopSource(path, logger)
		stops, err := src.LoadStops(context.Background())
		require.NoError(t, err)
		require.Len(t, stops, 2)

		assert.Equal(t, "TVM-001", stops[0].ID)
		assert.Equal(t, "Thampanoor Central", stops[0].Name)
		assert.InDelta(t, 8.4875, stops[0].Latitude, 1e-9)
		assert.InDelta(t, 76.9520, stops[0].Longitude, 1e-9)
		assert.Equal(t, domain.CategoryTransportHub, stops[0].Category)
		assert.InDelta(t, 2.0, stops[0].Popularity, 1e-9)
	})

	t.Run("accepts numeric ids from raw extracts", func(t *testing.T) {
		path := writeDataset(t, `[
			{"bus_stop_id": 4587314007, "name": "Vandipetta", "lat": 11.6085, "lon": 75.5917}
		]`)

		src := NewStopSource(path, logger)
		stops, err := src.LoadStops(context.Background())
		require.NoError(t, err)
		require.Len(t, stops, 1)

		assert.Equal(t, "4587314007", stops[0].ID)
		assert.Equal(t, domain.CategoryRegular, stops[0].Category)
		assert.Zero(t, stops[0].Popularity)
	})

	t.Run("missing file", func(t *testing.T) {
		src := NewStopSource(filepath.Join(t.TempDir(), "absent.json"), logger)
		_, err := src.LoadStops(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCatalogLoadFailure))
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeDataset(t, `{"not": "an array"`)
		src := NewStopSource(path, logger)
		_, err := src.LoadStops(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCatalogLoadFailure))
	})
}
