package imagegen

import (
	"context"
	"net/http"
	"time"

	"imagegen/internal/pkg/lobe"
)

// DefaultTimeout 上游请求默认超时
const DefaultTimeout = 120 * time.Second

// GenerationsPath 各服务商统一的图片生成路径
const GenerationsPath = "/images/generations"

// Descriptor 服务商静态描述
type Descriptor struct {
	ID          string // 路由标识，如 siliconflow
	Name        string // 展示名称，用于错误消息，如 SiliconFlow
	SettingsKey string // 插件设置中 API Key 的键名
	BaseURL     string

	// 以下用于生成插件 manifest
	Identifier  string
	Title       string
	Description string
	Avatar      string
	Parameters  *lobe.Schema
}

// Summary 请求摘要，用于日志、指标与生成记录
type Summary struct {
	Model  string
	Prompt string
}

// Payload 发往上游的请求体
type Payload interface {
	Summary() Summary
}

// Capability 单个服务商的差异点：默认值/校验、响应渲染、上游错误消息提取
type Capability[Req any, P Payload, Resp any] struct {
	Descriptor

	// Prepare 校验请求并填充默认值，校验失败返回 *Error
	Prepare func(req *Req) (P, error)
	// Render 将上游响应转换为 Markdown
	Render func(payload P, resp *Resp) (string, error)
	// UpstreamMessage 从上游错误响应体中提取消息，返回空串时使用通用消息
	UpstreamMessage func(body []byte) string
}

// Generator 对外暴露的非泛型生成接口
type Generator interface {
	Descriptor() Descriptor
	Generate(ctx context.Context, settings lobe.Settings, body []byte) (string, error)
}

// Attempt 一次生成请求的结果
type Attempt struct {
	RequestID string
	Provider  string
	Model     string
	Prompt    string
	Outcome   string // success 或错误分类
	Status    int
	Duration  time.Duration
	At        time.Time
}

// OutcomeSuccess 成功结果
const OutcomeSuccess = "success"

// Observer 接收每次生成的结果（指标、生成记录）
type Observer interface {
	ObserveAttempt(ctx context.Context, attempt Attempt)
}

// Options 流水线依赖
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Observers  []Observer
}
