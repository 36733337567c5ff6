package media

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	youTubeIDLength      = 11
	videoAspectLandscape = "16:9"
)

// 取最后一个常见分享链接片段之后的内容作为候选 ID
var videoIDPattern = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// Embed 描述交给内嵌播放器的视频信息
type Embed struct {
	VideoID  string `json:"videoId"`
	EmbedURL string `json:"embedUrl"`
	WatchURL string `json:"watchUrl"`
	Aspect   string `json:"aspect"`
}

// ExtractVideoID 从分享链接或原始输入中提取 11 位视频 ID，提取失败时原样返回输入。
func ExtractVideoID(raw string) string {
	if match := videoIDPattern.FindStringSubmatch(raw); match != nil && len(match[2]) == youTubeIDLength {
		return match[2]
	}
	if id := youTubeIDFromURL(raw); len(id) == youTubeIDLength {
		return id
	}
	return raw
}

// youTubeIDFromURL 处理 shorts/live 等正则未覆盖的路径
func youTubeIDFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil || u == nil {
		return ""
	}
	if !isHostOrSubdomain(u.Hostname(), "youtube.com") {
		return ""
	}

	path := strings.Trim(u.Path, "/")
	var videoID string
	switch {
	case strings.HasPrefix(path, "shorts/"):
		videoID = strings.TrimPrefix(path, "shorts/")
	case strings.HasPrefix(path, "live/"):
		videoID = strings.TrimPrefix(path, "live/")
	}
	if strings.Contains(videoID, "/") {
		videoID = strings.Split(videoID, "/")[0]
	}
	return videoID
}

// EmbedFor 构造内嵌播放器地址
func EmbedFor(videoID string) Embed {
	id := url.PathEscape(strings.TrimSpace(videoID))

	values := url.Values{}
	values.Set("rel", "0")
	values.Set("modestbranding", "1")
	values.Set("playsinline", "1")

	return Embed{
		VideoID:  videoID,
		EmbedURL: fmt.Sprintf("https://www.youtube.com/embed/%s?%s", id, values.Encode()),
		WatchURL: fmt.Sprintf("https://www.youtube.com/watch?v=%s", id),
		Aspect:   videoAspectLandscape,
	}
}

func isHostOrSubdomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
