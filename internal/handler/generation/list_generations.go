package generation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httputil "imagegen/internal/pkg/http"
	"imagegen/internal/pkg/journal"
)

const defaultLimit = 20

// ListGenerationsRequest 查询参数
type ListGenerationsRequest struct {
	Provider string `form:"provider"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

// ListGenerationsResponseData 查询结果
type ListGenerationsResponseData struct {
	Generations []journal.Record `json:"generations"`
}

// ListGenerations 查询最近的生成记录
// @Summary      最近生成记录
// @Description  返回最近的图片生成元数据（不含图片），可按服务商过滤
// @Tags         生成记录
// @Produce      json
// @Param        provider  query     string  false  "服务商"  Enums(siliconflow, xai, zhipuai)
// @Param        limit     query     int     false  "条数，默认 20，最大 200"
// @Success      200       {object}  httputil.SuccessResponse{data=ListGenerationsResponseData}
// @Failure      400       {object}  httputil.ErrorResponse  "参数错误"
// @Failure      503       {object}  httputil.ErrorResponse  "未启用生成记录"
// @Failure      500       {object}  httputil.ErrorResponse  "服务器内部错误"
// @Router       /api/v1/generations [get]
func (h *Handler) ListGenerations(c *gin.Context) {
	if h.records == nil {
		c.JSON(http.StatusServiceUnavailable, httputil.NewErrorResponse(50301, "生成记录未启用"))
		return
	}

	var req ListGenerationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(40001, "参数错误", err.Error()))
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultLimit
	}

	records, err := h.records.Recent(c.Request.Context(), req.Provider, req.Limit)
	if err != nil {
		log.Error().Err(err).Str("provider", req.Provider).Msg("查询生成记录失败")
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(50001, "查询生成记录失败", err.Error()))
		return
	}
	if records == nil {
		records = []journal.Record{}
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", ListGenerationsResponseData{
		Generations: records,
	}))
}
