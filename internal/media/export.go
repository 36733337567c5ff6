package media

import (
	"regexp"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Export 是供下载的纯文本文件
type Export struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ExportResource 将资源导出为 <标题>.txt，标题中的连续空白替换为下划线。
func ExportResource(title, content string) Export {
	return Export{
		FileName:    ExportFileName(title),
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(content),
	}
}

// ExportFileName 生成导出文件名
func ExportFileName(title string) string {
	return whitespaceRun.ReplaceAllString(title, "_") + ".txt"
}
