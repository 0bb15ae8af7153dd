package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// routeSignature renders the waypoint sequence the same way the routing URL
// does, so one sequence always maps to one key. Coordinates are quantized to
// five decimals (about a metre) which also absorbs float jitter.
func routeSignature(points []domain.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.5f,%.5f", p.Lon, p.Lat)
	}
	return strings.Join(parts, ";")
}

func routeKey(points []domain.Point) string {
	return "route:" + routeSignature(points)
}

func noRouteKey(points []domain.Point) string {
	return "noroute:" + routeSignature(points)
}

func (r *cacheRepository) GetRouteComputation(ctx context.Context, points []domain.Point) (*domain.RouteComputation, error) {
	data, err := r.Get(ctx, routeKey(points))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var comp domain.RouteComputation
	if err := json.Unmarshal(data, &comp); err != nil {
		r.logger.Error("Failed to unmarshal cached route", zap.Error(err))
		return nil, fmt.Errorf("unmarshal route: %w", err)
	}

	return &comp, nil
}

func (r *cacheRepository) SetRouteComputation(ctx context.Context, points []domain.Point, comp *domain.RouteComputation, ttl time.Duration) error {
	data, err := json.Marshal(comp)
	if err != nil {
		r.logger.Error("Failed to marshal route", zap.Error(err))
		return fmt.Errorf("marshal route: %w", err)
	}

	return r.Set(ctx, routeKey(points), data, ttl)
}

func (r *cacheRepository) MarkNoRoute(ctx context.Context, points []domain.Point, ttl time.Duration) error {
	return r.Set(ctx, noRouteKey(points), []byte("1"), ttl)
}

func (r *cacheRepository) HasNoRoute(ctx context.Context, points []domain.Point) (bool, error) {
	return r.Exists(ctx, noRouteKey(points))
}
