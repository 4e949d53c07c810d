package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geonook/kcislk-timetalle/config"
)

// Client Redis 客户端封装
// 当前仅缓存基础列表（班级/教师/教室/节次）；周课表合并结果永不缓存，每次请求实时计算
type Client struct {
	rdb    *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	ttl := time.Duration(cfg.LookupTTL) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, ttl: ttl, logger: logger}, nil
}

// ── 基础列表缓存 ──

const lookupPrefix = "lookup:"

// GetLookup 读取缓存的基础列表，未命中或解码失败返回 false
// 接收方必须能安全接收 nil Client（Redis 降级运行时）
func (c *Client) GetLookup(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, lookupPrefix+key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("缓存内容解码失败，按未命中处理", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetLookup 写入基础列表缓存，失败时仅记录日志不向上传播
func (c *Client) SetLookup(ctx context.Context, key string, val interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, lookupPrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateLookups 清除所有基础列表缓存（管理端数据修补后调用）
func (c *Client) InvalidateLookups(ctx context.Context) {
	if c == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, lookupPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
