package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/common/config"
	"github.com/amoylab/sessiongate/pkg/utils"

	"github.com/ifuryst/lol"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore reads session records from Redis (single, sentinel or cluster)
type RedisStore struct {
	logger *zap.Logger
	client redis.UniversalClient
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store and verifies the connection
func NewRedisStore(logger *zap.Logger, cfg *config.SessionRedisConfig) (*RedisStore, error) {
	addrs := redisAddrs(cfg.Addr)
	if len(addrs) == 0 {
		return nil, cnst.ErrMissingRedisAddr
	}

	redisOptions := &redis.UniversalOptions{
		Addrs:       addrs,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
		PoolSize:    cfg.PoolSize,
	}
	if cfg.ClusterType == cnst.RedisClusterTypeSentinel {
		redisOptions.MasterName = cfg.MasterName
	}
	if cfg.ClusterType != cnst.RedisClusterTypeCluster {
		// can not set db in cluster mode
		redisOptions.DB = cfg.DB
	}
	client := redis.NewUniversalClient(redisOptions)

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		logger: logger.Named("session.store.redis"),
		client: client,
	}, nil
}

func redisAddrs(addr string) []string {
	return lol.UniqSlice(utils.SplitList(addr, ";,"))
}

// Get implements Store.Get
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return val, nil
}

// Ping implements Store.Ping
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close implements Store.Close
func (s *RedisStore) Close() error {
	return s.client.Close()
}
