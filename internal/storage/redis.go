package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// Connect initialises a Redis client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisStorage keeps the session under <prefix>:token and <prefix>:user,
// both expiring together after ttl (0 = no expiry).
type RedisStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	// opTimeout bounds each storage call; the credential store interface
	// is context-free by design.
	opTimeout time.Duration
}

// NewRedisStorage wraps an established client.
func NewRedisStorage(client *redis.Client, prefix string, ttl time.Duration) *RedisStorage {
	if prefix == "" {
		prefix = "ecodeli"
	}
	return &RedisStorage{client: client, prefix: prefix, ttl: ttl, opTimeout: defaultTimeout}
}

func (s *RedisStorage) tokenKey() string { return s.prefix + ":token" }
func (s *RedisStorage) userKey() string  { return s.prefix + ":user" }

func (s *RedisStorage) Save(token string, user []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.userKey(), user, s.ttl)
	pipe.Set(ctx, s.tokenKey(), token, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *RedisStorage) Load() (string, []byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	token, err := s.client.Get(ctx, s.tokenKey()).Result()
	if err == redis.Nil {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, fmt.Errorf("read token: %w", err)
	}
	user, err := s.client.Get(ctx, s.userKey()).Bytes()
	if err == redis.Nil {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, fmt.Errorf("read user: %w", err)
	}
	if token == "" || len(user) == 0 {
		return "", nil, false, nil
	}
	return token, user, true, nil
}

func (s *RedisStorage) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
