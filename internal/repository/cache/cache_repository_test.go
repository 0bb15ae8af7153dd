package cache

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/config"
	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/domain/repository"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, repository.CacheRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	r, err := NewRedis(&config.RedisConfig{Host: host, Port: port}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	return mr, NewCacheRepository(r)
}

func tvmKochiLeg() []domain.Point {
	return []domain.Point{
		{Lat: 8.4875, Lon: 76.9520},
		{Lat: 9.9675, Lon: 76.3203},
	}
}

func TestCacheRepository_RawOperations(t *testing.T) {
	_, repo := newTestCache(t)
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "k1", []byte("v1"), time.Minute))

		val, err := repo.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), val)
	})

	t.Run("miss is not an error", func(t *testing.T) {
		val, err := repo.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "k2", []byte("v2"), time.Minute))
		require.NoError(t, repo.Delete(ctx, "k2"))

		val, err := repo.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("exists", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "k3", []byte("v3"), time.Minute))

		ok, err := repo.Exists(ctx, "k3")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCacheRepository_RouteComputation(t *testing.T) {
	mr, repo := newTestCache(t)
	ctx := context.Background()
	points := tvmKochiLeg()

	t.Run("roundtrip preserves status and metrics", func(t *testing.T) {
		comp := &domain.RouteComputation{
			Status:   domain.ComputationDegraded,
			Geometry: []domain.Point{{Lat: 8.4875, Lon: 76.9520}, {Lat: 9.9675, Lon: 76.3203}},
			Metrics:  domain.RouteMetrics{DistanceMeters: 182000, DurationSeconds: 14200},
		}
		require.NoError(t, repo.SetRouteComputation(ctx, points, comp, 5*time.Minute))

		got, err := repo.GetRouteComputation(ctx, points)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, domain.ComputationDegraded, got.Status)
		assert.Len(t, got.Geometry, 2)
		assert.InDelta(t, 182000, got.Metrics.DistanceMeters, 1e-9)
	})

	t.Run("coordinate jitter below quantization hits same entry", func(t *testing.T) {
		jittered := []domain.Point{
			{Lat: 8.4875 + 1e-7, Lon: 76.9520 - 1e-7},
			{Lat: 9.9675, Lon: 76.3203},
		}

		got, err := repo.GetRouteComputation(ctx, jittered)
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("miss is not an error", func(t *testing.T) {
		got, err := repo.GetRouteComputation(ctx, []domain.Point{{Lat: 10.0, Lon: 76.0}, {Lat: 11.0, Lon: 75.0}})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("entry expires", func(t *testing.T) {
		mr.FastForward(10 * time.Minute)

		got, err := repo.GetRouteComputation(ctx, points)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCacheRepository_NoRouteMarker(t *testing.T) {
	mr, repo := newTestCache(t)
	ctx := context.Background()
	points := tvmKochiLeg()

	ok, err := repo.HasNoRoute(ctx, points)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.MarkNoRoute(ctx, points, 30*time.Second))

	ok, err = repo.HasNoRoute(ctx, points)
	require.NoError(t, err)
	assert.True(t, ok)

	// Negative entries are short-lived
	mr.FastForward(time.Minute)
	ok, err = repo.HasNoRoute(ctx, points)
	require.NoError(t, err)
	assert.False(t, ok)
}
