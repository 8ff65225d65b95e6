package imagegen

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误分类
type Kind string

const (
	// KindSettings 插件设置缺失、API Key 为空或被上游拒绝（401）
	KindSettings Kind = "settings"
	// KindValidation 请求参数不合法
	KindValidation Kind = "validation"
	// KindUpstream 上游返回非 200
	KindUpstream Kind = "upstream"
	// KindTranslation 上游 200 但缺少必需字段
	KindTranslation Kind = "translation"
	// KindTransport 网络错误、超时或响应无法解析
	KindTransport Kind = "transport"
)

// 对外错误消息
const (
	MsgSettingsNotFound  = "Plugin settings not found."
	MsgPromptRequired    = "Prompt is required."
	MsgInvalidBody       = "Invalid request body."
	MsgGenerateFailed    = "Failed to generate image."
	MsgImageURLEmpty     = "Failed to generate image, imageUrl is empty."
	MsgNoImagesGenerated = "Failed to generate any images."
)

// Error 图片生成流水线错误
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Cause   error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Cause
}

// SettingsError 插件设置类错误，状态码由插件网关约定决定
func SettingsError(message string) *Error {
	return &Error{Kind: KindSettings, Status: http.StatusUnprocessableEntity, Message: message}
}

// ValidationError 参数校验错误 (400)
func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

// UpstreamError 上游非 200，透传状态码
func UpstreamError(status int, message string) *Error {
	return &Error{Kind: KindUpstream, Status: status, Message: message}
}

// TranslationError 响应转换错误 (500)
func TranslationError(message string) *Error {
	return &Error{Kind: KindTranslation, Status: http.StatusInternalServerError, Message: message}
}

// TransportError 传输层错误 (500)
func TransportError(cause error) *Error {
	return &Error{Kind: KindTransport, Status: http.StatusInternalServerError, Message: MsgGenerateFailed, Cause: cause}
}

// AsError 将任意错误归类为 *Error，未分类错误视为传输层错误
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return TransportError(err)
}
