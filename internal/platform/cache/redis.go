package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/rankks/internal/platform/logging"
	"github.com/riskibarqy/rankks/internal/platform/resilience"
)

const defaultRedisKeyPrefix = "rankks:upstream:"

type RedisConfig struct {
	URL         string
	KeyPrefix   string
	TTL         time.Duration
	DialTimeout time.Duration
	Logger      *logging.Logger
}

// RedisStore shares upstream responses between replicas. It only stores
// []byte values; redis failures degrade to calling the loader directly.
type RedisStore struct {
	client   *redis.Client
	prefix   string
	ttl      time.Duration
	logger   *logging.Logger
	flight   resilience.SingleFlight
	observer Observer
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	rawURL := strings.TrimSpace(cfg.URL)
	if rawURL == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
		opts.ReadTimeout = cfg.DialTimeout
		opts.WriteTimeout = cfg.DialTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultRedisKeyPrefix
	}

	return &RedisStore{
		client: redis.NewClient(opts),
		prefix: prefix,
		ttl:    cfg.TTL,
		logger: logger,
	}, nil
}

func (s *RedisStore) WithObserver(observer Observer) *RedisStore {
	s.observer = observer
	return s
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) GetOrLoad(ctx context.Context, key string, loader Loader) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if raw, ok := s.get(ctx, key); ok {
		s.observe(true)
		return raw, nil
	}
	s.observe(false)

	loadCtx := context.WithoutCancel(ctx)
	value, err, _ := s.flight.Do(ctx, key, func() (any, error) {
		loaded, loadErr := loader(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		raw, ok := loaded.([]byte)
		if !ok {
			return nil, fmt.Errorf("redis store only caches []byte, got %T", loaded)
		}
		if setErr := s.client.Set(loadCtx, s.prefix+key, raw, s.ttl).Err(); setErr != nil {
			s.logger.WarnContext(loadCtx, "redis cache set failed", "key", key, "error", setErr)
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *RedisStore) get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "redis cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (s *RedisStore) observe(hit bool) {
	if s.observer != nil {
		s.observer.CacheLookup("redis", hit)
	}
}
