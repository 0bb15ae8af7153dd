package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	RedisStreams RedisStreamsConfig
	Cache        CacheConfig
	Catalog      CatalogConfig
	Routing      RoutingConfig
	Model        ModelConfig
	Estimation   EstimationConfig
	Log          LogConfig
	Worker       WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type RedisStreamsConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	RouteTTL   time.Duration
	NoRouteTTL time.Duration
}

// CatalogConfig selects where the stop dataset is loaded from. Source is
// "file" (JSON produced by the extraction pipeline) or "postgres" (the
// bus_stops table). Districts optionally narrows a postgres load. Bounds is
// the serviced region; stops outside it fail catalog validation.
type CatalogConfig struct {
	Source    string
	Path      string
	Districts []string
	MinLat    float64
	MaxLat    float64
	MinLon    float64
	MaxLon    float64
}

type RoutingConfig struct {
	BaseURL          string
	Profile          string
	RequestTimeout   time.Duration
	MaxRetries       int
	RateLimitRPS     float64
	RateBurst        int
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

type ModelConfig struct {
	Path string
}

// EstimationConfig carries the deterministic knobs of the estimation flow:
// the fallback speed for degraded-mode durations and the revenue model.
type EstimationConfig struct {
	CitySpeedKmph float64
	FarePerKm     float64
	AvgTripRatio  float64
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
	JobTimeout    time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env is fine in containerized deployments where
		// everything arrives through the environment.
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RedisStreams: RedisStreamsConfig{
			Host:     viper.GetString("REDIS_STREAMS_HOST"),
			Port:     viper.GetInt("REDIS_STREAMS_PORT"),
			Password: viper.GetString("REDIS_STREAMS_PASSWORD"),
			DB:       viper.GetInt("REDIS_STREAMS_DB"),
		},
		Cache: CacheConfig{
			RouteTTL:   time.Duration(viper.GetInt("ROUTE_CACHE_TTL")) * time.Second,
			NoRouteTTL: time.Duration(viper.GetInt("NO_ROUTE_CACHE_TTL")) * time.Second,
		},
		Catalog: CatalogConfig{
			Source:    viper.GetString("CATALOG_SOURCE"),
			Path:      viper.GetString("CATALOG_PATH"),
			Districts: parseList(viper.GetString("CATALOG_DISTRICTS")),
			MinLat:    viper.GetFloat64("CATALOG_MIN_LAT"),
			MaxLat:    viper.GetFloat64("CATALOG_MAX_LAT"),
			MinLon:    viper.GetFloat64("CATALOG_MIN_LON"),
			MaxLon:    viper.GetFloat64("CATALOG_MAX_LON"),
		},
		Routing: RoutingConfig{
			BaseURL:          viper.GetString("OSRM_BASE_URL"),
			Profile:          viper.GetString("OSRM_PROFILE"),
			RequestTimeout:   time.Duration(viper.GetInt("OSRM_REQUEST_TIMEOUT")) * time.Second,
			MaxRetries:       viper.GetInt("OSRM_MAX_RETRIES"),
			RateLimitRPS:     viper.GetFloat64("OSRM_RATE_LIMIT_RPS"),
			RateBurst:        viper.GetInt("OSRM_RATE_BURST"),
			BreakerThreshold: viper.GetInt("OSRM_BREAKER_THRESHOLD"),
			BreakerCooldown:  time.Duration(viper.GetInt("OSRM_BREAKER_COOLDOWN")) * time.Second,
		},
		Model: ModelConfig{
			Path: viper.GetString("MODEL_PATH"),
		},
		Estimation: EstimationConfig{
			CitySpeedKmph: viper.GetFloat64("CITY_SPEED_KMPH"),
			FarePerKm:     viper.GetFloat64("FARE_PER_KM"),
			AvgTripRatio:  viper.GetFloat64("AVG_TRIP_RATIO"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
			JobTimeout:    time.Duration(viper.GetInt("WORKER_JOB_TIMEOUT")) * time.Second,
		},
	}

	// The streams instance falls back to the cache instance when not
	// configured separately.
	if cfg.RedisStreams.Host == "" {
		cfg.RedisStreams = RedisStreamsConfig(cfg.Redis)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "route_estimation")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_STREAMS_DB", 0)

	viper.SetDefault("ROUTE_CACHE_TTL", 300)
	viper.SetDefault("NO_ROUTE_CACHE_TTL", 30)

	viper.SetDefault("CATALOG_SOURCE", "file")
	viper.SetDefault("CATALOG_PATH", "data/stops.json")
	// Serviced region defaults to Kerala.
	viper.SetDefault("CATALOG_MIN_LAT", 8.0)
	viper.SetDefault("CATALOG_MAX_LAT", 13.0)
	viper.SetDefault("CATALOG_MIN_LON", 74.5)
	viper.SetDefault("CATALOG_MAX_LON", 77.5)

	viper.SetDefault("OSRM_BASE_URL", "https://router.project-osrm.org")
	viper.SetDefault("OSRM_PROFILE", "driving")
	viper.SetDefault("OSRM_REQUEST_TIMEOUT", 4)
	viper.SetDefault("OSRM_MAX_RETRIES", 3)
	viper.SetDefault("OSRM_RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("OSRM_RATE_BURST", 20)
	viper.SetDefault("OSRM_BREAKER_THRESHOLD", 3)
	viper.SetDefault("OSRM_BREAKER_COOLDOWN", 30)

	viper.SetDefault("MODEL_PATH", "data/model.json")

	viper.SetDefault("CITY_SPEED_KMPH", 30.0)
	viper.SetDefault("FARE_PER_KM", 1.2)
	viper.SetDefault("AVG_TRIP_RATIO", 0.6)

	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("WORKER_ENABLED", false)
	viper.SetDefault("WORKER_CONSUMER_GROUP", "route-estimate-workers")
	viper.SetDefault("WORKER_MAX_RETRIES", 3)
	viper.SetDefault("WORKER_JOB_TIMEOUT", 15)
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case "file", "postgres":
	default:
		return fmt.Errorf("invalid CATALOG_SOURCE %q: must be file or postgres", c.Catalog.Source)
	}

	if c.Catalog.MinLat >= c.Catalog.MaxLat || c.Catalog.MinLon >= c.Catalog.MaxLon {
		return fmt.Errorf("invalid catalog bounds: [%f,%f]x[%f,%f]",
			c.Catalog.MinLat, c.Catalog.MaxLat, c.Catalog.MinLon, c.Catalog.MaxLon)
	}

	if c.Routing.RequestTimeout <= 0 {
		return fmt.Errorf("OSRM_REQUEST_TIMEOUT must be positive")
	}

	return nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
