// Package zhipuai 智谱AI CogView 图像生成
package zhipuai

import (
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"imagegen/internal/imagegen"
	"imagegen/internal/pkg/lobe"
)

const (
	// ID 路由标识
	ID = "zhipuai"
	// DefaultBaseURL 智谱AI API 基础地址
	DefaultBaseURL = "https://open.bigmodel.cn/api/paas/v4"
	// BaseURLEnv 覆盖基础地址的环境变量
	BaseURLEnv = "ZHIPUAI_BASE_URL"
	// SettingsKey 插件设置中的 API Key 键名
	SettingsKey = "ZHIPUAI_API_KEY"

	DefaultSize = "1024x1024"

	MsgModelRequired = "Model is required."
	MsgInvalidModel  = "Invalid model value."
)

// AllowedModels 严格校验模式下允许的模型
var AllowedModels = []string{"cogview-3-flash", "cogview-3", "cogview-3-plus"}

// Config 智谱AI 行为开关
type Config struct {
	// StrictValidation 校验 prompt、model 及模型白名单；默认关闭，请求原样转发
	StrictValidation bool
}

// Request 调用方请求，model/prompt/user_id 缺省时原样缺省
type Request struct {
	Prompt *string `json:"prompt"`
	Model  *string `json:"model"`
	Size   string  `json:"size"`
	UserID *string `json:"user_id"`
}

// Payload 发往智谱AI 的请求体
type Payload struct {
	Model  *string `json:"model,omitempty"`
	Prompt *string `json:"prompt,omitempty"`
	Size   string  `json:"size"`
	UserID *string `json:"user_id,omitempty"`
}

// Summary 实现 imagegen.Payload
func (p Payload) Summary() imagegen.Summary {
	return imagegen.Summary{Model: deref(p.Model), Prompt: deref(p.Prompt)}
}

// ContentFilter 内容安全信息
type ContentFilter struct {
	Role  string `json:"role"`
	Level int    `json:"level"`
}

// Response 智谱AI 响应
type Response struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL string `json:"url"`
	} `json:"data"`
	ContentFilter []ContentFilter `json:"content_filter,omitempty"`
}

// BaseURLFromEnv 读取 ZHIPUAI_BASE_URL，未设置时返回默认地址
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv(BaseURLEnv)); v != "" {
		return v
	}
	return DefaultBaseURL
}

// Capability 返回智谱AI 的流水线能力集
func Capability(cfg Config) imagegen.Capability[Request, Payload, Response] {
	return imagegen.Capability[Request, Payload, Response]{
		Descriptor: descriptor(),
		Prepare: func(req *Request) (Payload, error) {
			return prepare(cfg, req)
		},
		Render: render,
	}
}

// New 创建智谱AI 生成器
func New(opts imagegen.Options, cfg Config) *imagegen.Pipeline[Request, Payload, Response] {
	return imagegen.NewPipeline(Capability(cfg), opts)
}

func prepare(cfg Config, req *Request) (Payload, error) {
	if cfg.StrictValidation {
		if deref(req.Prompt) == "" {
			return Payload{}, imagegen.ValidationError(imagegen.MsgPromptRequired)
		}
		model := deref(req.Model)
		if model == "" {
			return Payload{}, imagegen.ValidationError(MsgModelRequired)
		}
		if !slices.Contains(AllowedModels, model) {
			return Payload{}, imagegen.ValidationError(MsgInvalidModel)
		}
	}

	payload := Payload{
		Model:  req.Model,
		Prompt: req.Prompt,
		Size:   req.Size,
		UserID: req.UserID,
	}
	if payload.Size == "" {
		payload.Size = DefaultSize
	}
	return payload, nil
}

func render(payload Payload, resp *Response) (string, error) {
	if len(resp.ContentFilter) > 0 {
		log.Info().Str("provider", ID).Interface("content_filter", resp.ContentFilter).Msg("content filter reported")
	}

	var imageURL string
	if len(resp.Data) > 0 {
		imageURL = resp.Data[0].URL
	}
	if imageURL == "" {
		return "", imagegen.TranslationError(imagegen.MsgImageURLEmpty)
	}

	lines := []string{
		imagegen.Embed("Generated Image", imageURL),
		imagegen.Caption("提示词", deref(payload.Prompt)),
		imagegen.Caption("模型", deref(payload.Model)),
		imagegen.Caption("尺寸", payload.Size),
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func descriptor() imagegen.Descriptor {
	models := make([]any, len(AllowedModels))
	for i, m := range AllowedModels {
		models[i] = m
	}

	return imagegen.Descriptor{
		ID:          ID,
		Name:        "ZhipuAI",
		SettingsKey: SettingsKey,
		BaseURL:     BaseURLFromEnv(),
		Identifier:  "zhipuai-image",
		Title:       "智谱AI 图像生成",
		Description: "使用智谱AI CogView 模型根据文本生成图片",
		Avatar:      "🖌️",
		Parameters: lobe.Object([]string{"prompt", "model"}, map[string]*lobe.Schema{
			"prompt":  {Type: "string", Description: "图片描述"},
			"model":   {Type: "string", Description: "模型名称", Enum: models},
			"size":    {Type: "string", Description: "图片尺寸", Default: DefaultSize},
			"user_id": {Type: "string", Description: "终端用户ID，用于内容安全追溯"},
		}),
	}
}
