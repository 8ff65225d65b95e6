package plugin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imagegen/internal/imagegen"
	httputil "imagegen/internal/pkg/http"
	"imagegen/internal/pkg/lobe"
)

// MsgUnknownProvider 未注册的服务商
const MsgUnknownProvider = "Unknown provider."

// MessageResponse 错误响应类型别名
type MessageResponse = httputil.MessageResponse

// MarkdownResponse 成功响应类型别名
type MarkdownResponse = httputil.MarkdownResponse

// lookup 根据路径参数查找生成器，未找到时写入 404
func (h *Handler) lookup(c *gin.Context) (imagegen.Generator, bool) {
	gen, ok := h.generators[c.Param("provider")]
	if !ok {
		c.JSON(http.StatusNotFound, MessageResponse{Message: MsgUnknownProvider})
		return nil, false
	}
	return gen, true
}

// writeError 将流水线错误转换为插件响应
// 设置类错误使用插件错误格式，其余使用 {message}
func writeError(c *gin.Context, err error) {
	e := imagegen.AsError(err)
	if e.Kind == imagegen.KindSettings {
		c.JSON(lobe.ErrorStatus(lobe.PluginSettingsInvalid), lobe.NewErrorResponse(lobe.PluginSettingsInvalid, e.Message))
		return
	}
	c.JSON(e.Status, MessageResponse{Message: e.Message})
}

// requestBaseURL 根据请求（含反向代理头）推导对外访问地址
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := c.Request.Host
	if fwd := c.GetHeader("X-Forwarded-Host"); fwd != "" {
		host = fwd
	}
	return scheme + "://" + host
}
