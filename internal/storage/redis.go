package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/types"
)

// ErrNotFound is returned when a key is not found in Redis.
// It wraps the underlying redis.Nil error for abstraction.
var ErrNotFound = redis.Nil

// Redis 键值存储适配器
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opt.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeoutSeconds > 0 {
		opt.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis连接测试失败: %w", err)
	}

	return &Redis{Client: client, config: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping 检查Redis连接
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// GetMD5ExpireDuration 返回配置的MD5记录过期时间
func (r *Redis) GetMD5ExpireDuration() time.Duration {
	days := r.config.MD5RecordExpireDays
	if days <= 0 {
		days = 365
	}
	return time.Duration(days) * 24 * time.Hour
}

// CheckAndAddParsedTextMD5 检查并添加解析文本MD5到集合，原子操作。
// 返回的 exists 表示该MD5在调用前是否已存在（内容重复）。
func (r *Redis) CheckAndAddParsedTextMD5(ctx context.Context, md5Hex string) (exists bool, err error) {
	if r.Client == nil {
		return false, fmt.Errorf("redis client is not initialized")
	}
	if md5Hex == "" {
		return false, fmt.Errorf("md5不能为空")
	}

	key := constants.ParsedTextMD5SetKey
	pipe := r.Client.TxPipeline()
	addCmd := pipe.SAdd(ctx, key, md5Hex)
	pipe.ExpireNX(ctx, key, r.GetMD5ExpireDuration())
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("检查并添加MD5失败: %w", err)
	}

	// SADD 返回新增成员数，0表示已存在
	return addCmd.Val() == 0, nil
}

// RemoveParsedTextMD5 从集合中移除MD5，用于下游失败后的回滚
func (r *Redis) RemoveParsedTextMD5(ctx context.Context, md5Hex string) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.SRem(ctx, constants.ParsedTextMD5SetKey, md5Hex).Err()
}

// CacheAnalysis 缓存分析结果，带固定TTL
func (r *Redis) CacheAnalysis(ctx context.Context, submissionUUID string, analysis *types.ResumeAnalysis) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("序列化分析结果失败: %w", err)
	}
	key := constants.AnalysisCachePrefix + submissionUUID
	return r.Client.Set(ctx, key, data, constants.AnalysisCacheDuration).Err()
}

// GetCachedAnalysis 读取缓存的分析结果，未命中返回 ErrNotFound
func (r *Redis) GetCachedAnalysis(ctx context.Context, submissionUUID string) (*types.ResumeAnalysis, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("redis client is not initialized")
	}
	key := constants.AnalysisCachePrefix + submissionUUID
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var analysis types.ResumeAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("反序列化缓存的分析结果失败: %w", err)
	}
	return &analysis, nil
}
