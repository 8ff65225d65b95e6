// Package lobe 实现 LobeChat 插件网关约定：插件设置的传递、插件错误格式与 manifest 结构。
package lobe

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SettingsHeader 网关通过该请求头传递插件设置（JSON 对象）
const SettingsHeader = "X-Lobe-Plugin-Settings"

// Settings 插件设置，由宿主按安装实例提供
type Settings map[string]any

// String 读取字符串类型的设置项，缺失或类型不符时返回空字符串
func (s Settings) String(key string) string {
	if s == nil {
		return ""
	}
	switch v := s[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// SettingsResolver 从请求中解析插件设置
// ok 为 false 表示请求未携带设置
type SettingsResolver interface {
	Resolve(r *http.Request) (settings Settings, ok bool)
}

// ResolverFunc 函数适配器
type ResolverFunc func(r *http.Request) (Settings, bool)

// Resolve 实现 SettingsResolver
func (f ResolverFunc) Resolve(r *http.Request) (Settings, bool) {
	return f(r)
}

// HeaderResolver 从 X-Lobe-Plugin-Settings 请求头解析设置
type HeaderResolver struct{}

// NewHeaderResolver 创建请求头解析器
func NewHeaderResolver() *HeaderResolver {
	return &HeaderResolver{}
}

// Resolve 实现 SettingsResolver，请求头缺失或不是合法 JSON 对象时视为未提供
func (HeaderResolver) Resolve(r *http.Request) (Settings, bool) {
	raw := r.Header.Get(SettingsHeader)
	if raw == "" {
		return nil, false
	}

	var settings Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil || settings == nil {
		return nil, false
	}
	return settings, true
}
