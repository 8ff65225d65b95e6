package generation

import (
	"context"

	"imagegen/internal/pkg/journal"
)

// RecordLister 生成记录查询接口
type RecordLister interface {
	Recent(ctx context.Context, provider string, limit int) ([]journal.Record, error)
}

// Handler 生成记录模块处理器
type Handler struct {
	records RecordLister
}

// NewHandler 创建生成记录处理器，records 为 nil 表示未启用记录
func NewHandler(records RecordLister) *Handler {
	return &Handler{records: records}
}
