package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/pkg/errors"
	"github.com/route-estimation-service/internal/usecase"
	"github.com/route-estimation-service/internal/usecase/dto"
)

func TestStopUseCase_ListStops(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewStopUseCase(testCatalog(t), zap.NewNop())

	resp, err := uc.ListStops(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Total)
	require.Len(t, resp.Stops, 4)
	assert.Equal(t, "TVM-001", resp.Stops[0].ID)
	assert.Equal(t, "Thampanoor Central", resp.Stops[0].Name)
	assert.InDelta(t, 2.0, resp.Stops[0].Popularity, 0.001)
}

func TestStopUseCase_NearestStops(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewStopUseCase(testCatalog(t), zap.NewNop())

	t.Run("orders stops by distance from the query point", func(t *testing.T) {
		// Query point sits in central Kochi
		resp, err := uc.NearestStops(ctx, dto.NearestStopsRequest{Lat: 9.97, Lon: 76.28, Limit: 3})
		require.NoError(t, err)

		require.Len(t, resp.Stops, 3)
		assert.Equal(t, "EKM-002", resp.Stops[0].ID)
		assert.Equal(t, "EKM-001", resp.Stops[1].ID)
		assert.LessOrEqual(t, resp.Stops[0].DistanceKm, resp.Stops[1].DistanceKm)
		assert.LessOrEqual(t, resp.Stops[1].DistanceKm, resp.Stops[2].DistanceKm)
	})

	t.Run("defaults the limit", func(t *testing.T) {
		resp, err := uc.NearestStops(ctx, dto.NearestStopsRequest{Lat: 9.97, Lon: 76.28})
		require.NoError(t, err)
		assert.Len(t, resp.Stops, 4)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		_, err := uc.NearestStops(ctx, dto.NearestStopsRequest{Lat: 95.0, Lon: 76.28})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrInvalidCoordinates))
	})
}
