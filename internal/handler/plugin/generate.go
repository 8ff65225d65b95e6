package plugin

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"imagegen/internal/imagegen"
)

// Generate 文生图插件接口
// @Summary      生成图片
// @Description  将提示词转发给对应服务商，返回可直接渲染的 Markdown。API Key 通过 X-Lobe-Plugin-Settings 请求头传入
// @Tags         插件
// @Accept       json
// @Produce      json
// @Param        provider                path      string  true  "服务商"  Enums(siliconflow, xai, zhipuai)
// @Param        X-Lobe-Plugin-Settings  header    string  true  "插件设置 JSON"
// @Param        request                 body      object  true  "生成参数"
// @Success      200  {object}  MarkdownResponse
// @Failure      400  {object}  MessageResponse  "参数错误"
// @Failure      404  {object}  MessageResponse  "未知服务商"
// @Failure      422  {object}  lobe.ErrorResponse  "插件设置无效"
// @Failure      500  {object}  MessageResponse  "生成失败"
// @Router       /api/{provider}/generate [post]
func (h *Handler) Generate(c *gin.Context) {
	gen, ok := h.lookup(c)
	if !ok {
		return
	}

	settings, found := h.resolver.Resolve(c.Request)
	if !found {
		settings = nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: imagegen.MsgInvalidBody})
		return
	}

	markdown, err := gen.Generate(c.Request.Context(), settings, body)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, MarkdownResponse{MarkdownResponse: markdown})
}
