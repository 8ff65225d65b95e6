// Package siliconflow SiliconFlow 文生图（FLUX 等开源模型）
// API: https://docs.siliconflow.cn/
package siliconflow

import (
	"strings"

	"imagegen/internal/imagegen"
	"imagegen/internal/pkg/lobe"
)

const (
	// ID 路由标识
	ID = "siliconflow"
	// DefaultBaseURL SiliconFlow API 基础地址
	DefaultBaseURL = "https://api.siliconflow.cn/v1"
	// SettingsKey 插件设置中的 API Key 键名
	SettingsKey = "SILICONFLOW_API_KEY"

	DefaultModel     = "black-forest-labs/FLUX.1-schnell"
	DefaultImageSize = "1024x1024"

	expiryNotice = "*注意: 图片链接有效期为1小时，请及时保存*"
)

// Request 调用方请求
type Request struct {
	Prompt            string `json:"prompt"`
	Model             string `json:"model"`
	ImageSize         string `json:"image_size"`
	NegativePrompt    string `json:"negative_prompt"`
	Seed              int64  `json:"seed"`
	NumInferenceSteps int    `json:"num_inference_steps"`
}

// Payload 发往 SiliconFlow 的请求体
// 可选字段为零值时不发送
type Payload struct {
	Model             string `json:"model"`
	Prompt            string `json:"prompt"`
	ImageSize         string `json:"image_size"`
	NegativePrompt    string `json:"negative_prompt,omitempty"`
	Seed              int64  `json:"seed,omitempty"`
	NumInferenceSteps int    `json:"num_inference_steps,omitempty"`
}

// Summary 实现 imagegen.Payload
func (p Payload) Summary() imagegen.Summary {
	return imagegen.Summary{Model: p.Model, Prompt: p.Prompt}
}

// Response SiliconFlow 响应
type Response struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Timings struct {
		Inference float64 `json:"inference"` // 推理耗时
	} `json:"timings"`
	Seed float64 `json:"seed"`
}

// Capability 返回 SiliconFlow 的流水线能力集
func Capability() imagegen.Capability[Request, Payload, Response] {
	return imagegen.Capability[Request, Payload, Response]{
		Descriptor: descriptor(),
		Prepare:    prepare,
		Render:     render,
	}
}

// New 创建 SiliconFlow 生成器
func New(opts imagegen.Options) *imagegen.Pipeline[Request, Payload, Response] {
	return imagegen.NewPipeline(Capability(), opts)
}

func prepare(req *Request) (Payload, error) {
	if req.Prompt == "" {
		return Payload{}, imagegen.ValidationError(imagegen.MsgPromptRequired)
	}

	payload := Payload{
		Model:             req.Model,
		Prompt:            req.Prompt,
		ImageSize:         req.ImageSize,
		NegativePrompt:    req.NegativePrompt,
		Seed:              req.Seed,
		NumInferenceSteps: req.NumInferenceSteps,
	}
	if payload.Model == "" {
		payload.Model = DefaultModel
	}
	if payload.ImageSize == "" {
		payload.ImageSize = DefaultImageSize
	}
	return payload, nil
}

func render(payload Payload, resp *Response) (string, error) {
	var imageURL string
	if len(resp.Images) > 0 {
		imageURL = resp.Images[0].URL
	}
	if imageURL == "" {
		return "", imagegen.TranslationError(imagegen.MsgImageURLEmpty)
	}

	lines := []string{
		imagegen.Embed("Generated Image", imageURL),
		imagegen.Caption("提示词", payload.Prompt),
		imagegen.Caption("模型", payload.Model),
		imagegen.Caption("推理时间", imagegen.FormatNumber(resp.Timings.Inference)+"ms"),
		imagegen.Caption("种子", imagegen.FormatNumber(resp.Seed)),
		expiryNotice,
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func descriptor() imagegen.Descriptor {
	return imagegen.Descriptor{
		ID:          ID,
		Name:        "SiliconFlow",
		SettingsKey: SettingsKey,
		BaseURL:     DefaultBaseURL,
		Identifier:  "siliconflow-image",
		Title:       "SiliconFlow 图像生成",
		Description: "使用 SiliconFlow 托管的 FLUX 等模型根据文本生成图片",
		Avatar:      "🎨",
		Parameters: lobe.Object([]string{"prompt"}, map[string]*lobe.Schema{
			"prompt": {Type: "string", Description: "图片描述，建议使用英文"},
			"model": {
				Type:        "string",
				Description: "模型名称",
				Default:     DefaultModel,
				Enum: []any{
					"black-forest-labs/FLUX.1-schnell",
					"black-forest-labs/FLUX.1-dev",
					"stabilityai/stable-diffusion-3-5-large",
				},
			},
			"image_size":          {Type: "string", Description: "图片尺寸，格式为 宽x高", Default: DefaultImageSize},
			"negative_prompt":     {Type: "string", Description: "负向提示词"},
			"seed":                (&lobe.Schema{Type: "integer", Description: "随机种子"}).Bounds(0, 9999999999),
			"num_inference_steps": (&lobe.Schema{Type: "integer", Description: "推理步数"}).Bounds(1, 50),
		}),
	}
}
