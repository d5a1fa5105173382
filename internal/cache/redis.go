package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Domenick1991/flightsearch/config"
	"github.com/Domenick1991/flightsearch/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	savedFlightsKey           = "cache:saved_flights"
	savedFlightsGenerationKey = "cache:saved_flights:gen"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), ttl)
}

func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// SavedFlightsGeneration returns the current list generation. A counter that
// was never bumped reads as generation zero.
func (c *RedisCache) SavedFlightsGeneration(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, savedFlightsGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetSavedFlights returns the list cached under gen, or nil without error on a
// cache miss.
func (c *RedisCache) GetSavedFlights(ctx context.Context, gen int64) ([]domain.SavedFlight, error) {
	data, err := c.client.Get(ctx, savedFlightsListKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	flights := make([]domain.SavedFlight, 0)
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// SetSavedFlights stores flights under gen. A list read before a write lands
// under a generation nobody reads again.
func (c *RedisCache) SetSavedFlights(ctx context.Context, gen int64, flights []domain.SavedFlight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, savedFlightsListKey(gen), payload, c.ttl).Err()
}

// InvalidateSavedFlights moves readers to a new generation. Lists cached under
// older generations are left to expire.
func (c *RedisCache) InvalidateSavedFlights(ctx context.Context) error {
	return c.client.Incr(ctx, savedFlightsGenerationKey).Err()
}

func savedFlightsListKey(gen int64) string {
	return savedFlightsKey + ":" + strconv.FormatInt(gen, 10)
}
