package imagegen

import (
	"fmt"
	"strconv"
)

// Embed 生成 Markdown 图片
func Embed(alt, uri string) string {
	return "![" + alt + "](" + uri + ")"
}

// Caption 生成斜体元数据行，如 *模型: grok-2-image*
func Caption(label string, value any) string {
	return fmt.Sprintf("*%s: %v*", label, value)
}

// FormatNumber 以最短形式输出数字，整数不带小数点
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
