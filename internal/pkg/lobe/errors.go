package lobe

import "net/http"

// ErrorType 插件错误类型
type ErrorType string

// 插件错误类型，取值与 LobeChat 插件 SDK 保持一致
const (
	PluginSettingsInvalid ErrorType = "PluginSettingsInvalid"
	PluginServerError     ErrorType = "PluginServerError"
	BadRequest            ErrorType = "BadRequest"
)

// ErrorBody 插件错误详情
type ErrorBody struct {
	Message string `json:"message"`
}

// ErrorResponse 插件错误响应
type ErrorResponse struct {
	ErrorType ErrorType `json:"errorType"`
	Body      ErrorBody `json:"body"`
}

// NewErrorResponse 创建插件错误响应
func NewErrorResponse(errorType ErrorType, message string) *ErrorResponse {
	return &ErrorResponse{
		ErrorType: errorType,
		Body:      ErrorBody{Message: message},
	}
}

// ErrorStatus 返回插件错误类型对应的 HTTP 状态码
func ErrorStatus(errorType ErrorType) int {
	switch errorType {
	case PluginSettingsInvalid:
		return http.StatusUnprocessableEntity
	case BadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
