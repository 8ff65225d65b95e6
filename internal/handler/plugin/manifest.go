package plugin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imagegen/internal/imagegen"
	"imagegen/internal/pkg/lobe"
)

const systemRole = "When the user asks for a picture, call generateImage and show the returned markdownResponse to the user unchanged."

// Manifest 插件描述文件
// @Summary      获取插件 manifest
// @Description  返回 LobeChat 插件描述文件，API 地址根据当前请求的 Host 生成
// @Tags         插件
// @Produce      json
// @Param        provider  path      string  true  "服务商"  Enums(siliconflow, xai, zhipuai)
// @Success      200       {object}  lobe.Manifest
// @Failure      404       {object}  MessageResponse  "未知服务商"
// @Router       /api/{provider}/manifest.json [get]
func (h *Handler) Manifest(c *gin.Context) {
	gen, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, buildManifest(gen.Descriptor(), requestBaseURL(c)))
}

func buildManifest(d imagegen.Descriptor, baseURL string) *lobe.Manifest {
	return &lobe.Manifest{
		Identifier: d.Identifier,
		Version:    lobe.ManifestSchemaVersion,
		API: []lobe.API{
			{
				Name:        "generateImage",
				Description: d.Description,
				URL:         baseURL + "/api/" + d.ID + "/generate",
				Parameters:  d.Parameters,
			},
		},
		Meta: lobe.Meta{
			Title:       d.Title,
			Description: d.Description,
			Avatar:      d.Avatar,
			Tags:        []string{"image", "text-to-image", d.ID},
		},
		Settings: lobe.Object([]string{d.SettingsKey}, map[string]*lobe.Schema{
			d.SettingsKey: {
				Type:        "string",
				Title:       d.Name + " API Key",
				Description: "调用 " + d.Name + " 图片生成接口使用的 API Key",
				Format:      "password",
			},
		}),
		SystemRole: systemRole,
	}
}
