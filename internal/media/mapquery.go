package media

import (
	"fmt"
	"net/url"
	"strings"
)

// LocationSuffix 追加在不含医疗关键词的查询之后
const LocationSuffix = "hospitals clinics doctors"

// 地图缩放级别
const (
	ZoomEvent  = 15
	ZoomSearch = 13
)

// DefaultEventLocation 用于未填写地点的活动
const DefaultEventLocation = "University Campus"

var medicalKeywords = []string{
	"doctor", "hospital", "clinic", "health", "physician", "therapist",
	"nutrition", "dietitian", "dental", "dentist", "optometrist", "psych",
	"counselor", "wellness", "pharmacy", "cardio", "derma", "surgery",
	"care", "medical",
}

// NormalizeMapQuery 将自由文本转为地图查询。
// 含医疗关键词时原样使用，否则视为地点并追加 LocationSuffix；空查询返回空串。
// 结果未做 URL 转义，由使用方负责。
func NormalizeMapQuery(query string) string {
	if query == "" {
		return ""
	}
	if HasMedicalKeyword(query) {
		return query
	}
	return query + " " + LocationSuffix
}

// HasMedicalKeyword 不区分大小写地检查查询是否包含医疗关键词
func HasMedicalKeyword(query string) bool {
	lower := strings.ToLower(query)
	for _, keyword := range medicalKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// MapEmbedURL 构造内嵌地图地址，查询在此处转义
func MapEmbedURL(query string, zoom int) string {
	return fmt.Sprintf("https://maps.google.com/maps?q=%s&t=&z=%d&ie=UTF8&iwloc=&output=embed", url.QueryEscape(query), zoom)
}
