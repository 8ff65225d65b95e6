package plugin

import (
	"imagegen/internal/imagegen"
	"imagegen/internal/pkg/lobe"
)

// Handler 插件模块处理器
// 按 provider 路由到对应的生成流水线
type Handler struct {
	generators map[string]imagegen.Generator
	order      []string
	resolver   lobe.SettingsResolver
}

// NewHandler 创建插件模块处理器
func NewHandler(resolver lobe.SettingsResolver, generators ...imagegen.Generator) *Handler {
	h := &Handler{
		generators: make(map[string]imagegen.Generator, len(generators)),
		resolver:   resolver,
	}
	for _, g := range generators {
		id := g.Descriptor().ID
		if _, exists := h.generators[id]; !exists {
			h.order = append(h.order, id)
		}
		h.generators[id] = g
	}
	return h
}

// Providers 返回已注册的服务商描述，按注册顺序
func (h *Handler) Providers() []imagegen.Descriptor {
	list := make([]imagegen.Descriptor, 0, len(h.order))
	for _, id := range h.order {
		list = append(list, h.generators[id].Descriptor())
	}
	return list
}
