package ratesource

import (
	"context"
	"fmt"

	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/iwvelando/financing-schedule/pkg/rate"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// hashClient is the subset of the Redis client used to store rates as hashes.
type hashClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Redis serves rates stored as hashes named <prefix><key> with the fields
// valueKind and value.
type Redis struct {
	client hashClient
	prefix string
	logger *zap.Logger
}

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// NewRedisClient opens a client for the given options.
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// NewRedis wraps a Redis client as a rate source.
func NewRedis(logger *zap.Logger, client redis.Cmdable, prefix string) *Redis {
	return newRedis(logger, client, prefix)
}

func newRedis(logger *zap.Logger, client hashClient, prefix string) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = constants.DefaultRedisKeyPrefix
	}
	return &Redis{client: client, prefix: prefix, logger: logger}
}

// Lookup implements Source.
func (r *Redis) Lookup(ctx context.Context, key string) (rate.Rate, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+key).Result()
	if err != nil {
		return rate.Rate{}, fmt.Errorf("failed to read rate %s: %w: %w", key, ErrUnavailable, err)
	}
	if len(fields) == 0 {
		return rate.Rate{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	result, err := Decode(fields)
	if err != nil {
		return rate.Rate{}, fmt.Errorf("rate %s: %w", key, err)
	}

	r.logger.Debug("resolved financing rate",
		zap.String("op", "ratesource.Redis.Lookup"),
		zap.String("key", key),
		zap.String("valueKind", string(result.Kind)),
		zap.Float64("value", result.Value),
	)
	return result, nil
}

// Store writes a rate under key.
func (r *Redis) Store(ctx context.Context, key string, value rate.Rate) error {
	if err := value.Validate(); err != nil {
		return fmt.Errorf("refusing to store rate %s: %w", key, err)
	}
	fields := Encode(value)
	if err := r.client.HSet(ctx, r.prefix+key,
		FieldValueKind, fields[FieldValueKind],
		FieldValue, fields[FieldValue],
	).Err(); err != nil {
		return fmt.Errorf("failed to store rate %s: %w", key, err)
	}
	return nil
}
