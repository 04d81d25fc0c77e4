package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cadastro/internal/address"
	"cadastro/internal/config"
)

const cepKeyPrefix = "cep:"

// Redis caches resolved CEP lookups.
type Redis struct {
	*redis.Client
}

// ConnectRedis returns nil, nil when no address is configured.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	r := &Redis{client}
	if err := r.HealthCheck(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return r, nil
}

func (r *Redis) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Get returns nil, nil on a miss.
func (r *Redis) Get(ctx context.Context, cep string) (*address.Data, error) {
	raw, err := r.Client.Get(ctx, cepKeyPrefix+cep).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var data address.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode cached cep: %w", err)
	}
	return &data, nil
}

func (r *Redis) Set(ctx context.Context, cep string, data address.Data, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode cep: %w", err)
	}
	if err := r.Client.Set(ctx, cepKeyPrefix+cep, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
