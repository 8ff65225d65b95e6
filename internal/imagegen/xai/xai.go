// Package xai xAI Grok 图像生成，接口与 OpenAI images/generations 兼容
package xai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"imagegen/internal/imagegen"
	"imagegen/internal/pkg/lobe"
)

const (
	// ID 路由标识
	ID = "xai"
	// DefaultBaseURL xAI API 基础地址
	DefaultBaseURL = "https://api.x.ai/v1"
	// SettingsKey 插件设置中的 API Key 键名
	SettingsKey = "XAI_API_KEY"

	DefaultModel = "grok-2-image"
	DefaultN     = 1

	FormatURL     = "url"
	FormatB64JSON = "b64_json"

	dataURIPrefix = "data:image/jpeg;base64,"
)

// Request 调用方请求
type Request struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

// Payload 发往 xAI 的请求体，所有字段总是发送
type Payload struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

// Summary 实现 imagegen.Payload
func (p Payload) Summary() imagegen.Summary {
	return imagegen.Summary{Model: p.Model, Prompt: p.Prompt}
}

// Image 单张图片
type Image struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// Response xAI 响应
type Response struct {
	Created int64   `json:"created"`
	Data    []Image `json:"data"`
}

// Capability 返回 xAI 的流水线能力集
func Capability() imagegen.Capability[Request, Payload, Response] {
	return imagegen.Capability[Request, Payload, Response]{
		Descriptor:      descriptor(),
		Prepare:         prepare,
		Render:          render,
		UpstreamMessage: upstreamMessage,
	}
}

// New 创建 xAI 生成器
func New(opts imagegen.Options) *imagegen.Pipeline[Request, Payload, Response] {
	return imagegen.NewPipeline(Capability(), opts)
}

func prepare(req *Request) (Payload, error) {
	if req.Prompt == "" {
		return Payload{}, imagegen.ValidationError(imagegen.MsgPromptRequired)
	}

	payload := Payload{
		Model:          req.Model,
		Prompt:         req.Prompt,
		N:              req.N,
		ResponseFormat: req.ResponseFormat,
	}
	if payload.Model == "" {
		payload.Model = DefaultModel
	}
	if payload.N == 0 {
		payload.N = DefaultN
	}
	if payload.ResponseFormat == "" {
		payload.ResponseFormat = FormatURL
	}
	return payload, nil
}

// ImageURI 返回可在 Markdown 中展示的地址，无可用数据时返回空串
func ImageURI(responseFormat string, img Image) string {
	if responseFormat == FormatB64JSON && img.B64JSON != "" {
		if strings.HasPrefix(img.B64JSON, "data:") {
			return img.B64JSON
		}
		return dataURIPrefix + img.B64JSON
	}
	return img.URL
}

func render(payload Payload, resp *Response) (string, error) {
	embeds := make([]string, 0, len(resp.Data))
	for i, img := range resp.Data {
		uri := ImageURI(payload.ResponseFormat, img)
		if uri == "" {
			log.Warn().Str("provider", ID).Int("index", i).Msg("no image data found in response item")
			continue
		}
		embeds = append(embeds, imagegen.Embed(fmt.Sprintf("Generated Image %d", i+1), uri))
	}

	if len(embeds) == 0 {
		return "", imagegen.TranslationError(imagegen.MsgNoImagesGenerated)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(embeds, "\n\n"))

	// 多张图片共用同一个修订后提示词，只追加一次
	if revised := resp.Data[0].RevisedPrompt; revised != "" {
		sb.WriteString("\n\n")
		sb.WriteString(imagegen.Caption("原始提示词", payload.Prompt))
		sb.WriteString("\n\n")
		sb.WriteString(imagegen.Caption("修订后提示词", revised))
	}
	return sb.String(), nil
}

// upstreamMessage 尽力从错误响应中读取消息：
// {"message": "..."}、{"error": {"message": "..."}} 或 {"error": "..."}
func upstreamMessage(body []byte) string {
	var envelope struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	if len(envelope.Error) == 0 {
		return ""
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
		return nested.Message
	}
	var text string
	if err := json.Unmarshal(envelope.Error, &text); err == nil {
		return text
	}
	return ""
}

func descriptor() imagegen.Descriptor {
	return imagegen.Descriptor{
		ID:          ID,
		Name:        "xAI",
		SettingsKey: SettingsKey,
		BaseURL:     DefaultBaseURL,
		Identifier:  "xai-image",
		Title:       "xAI 图像生成",
		Description: "使用 xAI Grok 图像模型根据文本生成图片",
		Avatar:      "🖼️",
		Parameters: lobe.Object([]string{"prompt"}, map[string]*lobe.Schema{
			"prompt": {Type: "string", Description: "图片描述"},
			"model":  {Type: "string", Description: "模型名称", Default: DefaultModel},
			"n":      (&lobe.Schema{Type: "integer", Description: "生成数量", Default: DefaultN}).Bounds(1, 10),
			"response_format": {
				Type:        "string",
				Description: "返回格式",
				Default:     FormatURL,
				Enum:        []any{FormatURL, FormatB64JSON},
			},
		}),
	}
}
