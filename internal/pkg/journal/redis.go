// Package journal 使用 Redis 保存最近的图片生成记录（仅元数据，不保存图片）
package journal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"imagegen/internal/config"
	"imagegen/internal/imagegen"
	"imagegen/internal/pkg/id"
)

// 常用 key 模式
const (
	KeyPrefix = "imagegen:journal:"
	allKey    = KeyPrefix + "all"

	// DefaultMaxEntries 每个列表默认保留条数
	DefaultMaxEntries = 200
	// writeTimeout 写入超时，与请求 context 解耦
	writeTimeout = 2 * time.Second
)

// Record 单次生成记录
type Record struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id,omitempty"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model,omitempty"`
	Prompt     string    `json:"prompt,omitempty"`
	Outcome    string    `json:"outcome"`
	Status     int       `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Journal Redis 生成记录
type Journal struct {
	client     *redis.Client
	maxEntries int64
}

// New 创建并连接 Redis
func New(cfg *config.RedisConfig, maxEntries int) (*Journal, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, maxEntries), nil
}

// NewWithClient 使用已有客户端
func NewWithClient(client *redis.Client, maxEntries int) *Journal {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Journal{client: client, maxEntries: int64(maxEntries)}
}

// ProviderKey 生成 provider 记录列表 key
func ProviderKey(provider string) string {
	return KeyPrefix + provider
}

// Append 追加记录，同时写入 provider 列表和汇总列表，超出容量的旧记录被裁剪
func (j *Journal) Append(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = id.NewWithPrefix("gen")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, err = j.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range []string{ProviderKey(rec.Provider), allKey} {
			pipe.LPush(ctx, key, data)
			pipe.LTrim(ctx, key, 0, j.maxEntries-1)
		}
		return nil
	})
	return err
}

// Recent 按时间倒序返回最近的记录，provider 为空时返回全部
func (j *Journal) Recent(ctx context.Context, provider string, limit int) ([]Record, error) {
	if limit <= 0 || int64(limit) > j.maxEntries {
		limit = int(j.maxEntries)
	}

	key := allKey
	if provider != "" {
		key = ProviderKey(provider)
	}

	items, err := j.client.LRange(ctx, key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("skip malformed journal record")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ObserveAttempt 实现 imagegen.Observer
func (j *Journal) ObserveAttempt(ctx context.Context, a imagegen.Attempt) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	rec := Record{
		RequestID:  a.RequestID,
		Provider:   a.Provider,
		Model:      a.Model,
		Prompt:     a.Prompt,
		Outcome:    a.Outcome,
		Status:     a.Status,
		DurationMs: a.Duration.Milliseconds(),
		CreatedAt:  a.At.UTC(),
	}
	if err := j.Append(ctx, rec); err != nil {
		log.Warn().Err(err).Str("provider", a.Provider).Msg("failed to append generation record")
	}
}

// Ping 检查连接
func (j *Journal) Ping(ctx context.Context) error {
	return j.client.Ping(ctx).Err()
}

// Close 关闭连接
func (j *Journal) Close() error {
	return j.client.Close()
}
