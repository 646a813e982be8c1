package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache 是可选的读穿缓存。nil *Cache 合法：所有读直接回源，写/删为空操作。
// redis 故障按未命中处理，不影响请求结果。
type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
	log *zap.Logger
}

// New addr 为空时返回 nil（未启用缓存）
func New(addr, pass string, db int, l *zap.Logger) *Cache {
	if addr == "" {
		return nil
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		log: l,
	}
}

// NewWithClient 便于测试注入
func NewWithClient(rdb *redis.Client, l *zap.Logger) *Cache {
	if rdb == nil {
		return nil
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Cache{RDB: rdb, log: l}
}

func (c *Cache) Enabled() bool { return c != nil && c.RDB != nil }

func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if !c.Enabled() {
		return load(ctx)
	}
	b, err := c.RDB.Get(ctx, key).Bytes()
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if e := c.RDB.Set(ctx, key, b, ttl).Err(); e != nil {
			c.log.Warn("cache set failed", zap.String("key", key), zap.Error(e))
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.RDB.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Close()
}
