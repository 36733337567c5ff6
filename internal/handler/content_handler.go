package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/wellcampus/internal/media"
	"github.com/wellcampus/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

type videoView struct {
	service.Video
	Embed media.Embed `json:"embed"`
}

func buildVideoViews(videos []service.Video) []videoView {
	views := make([]videoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, videoView{Video: v, Embed: media.EmbedFor(v.VideoID)})
	}
	return views
}

func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// ListVideos 获取健身视频及内嵌播放地址
func (a *API) ListVideos(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"videos": buildVideoViews(a.dashboard.Snapshot().Videos)})
}

// GetVideo 获取单个视频
func (a *API) GetVideo(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的视频ID")
		return
	}

	video, err := a.dashboard.Video(id)
	if err != nil {
		a.respondServiceError(c, err, "视频不存在")
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": videoView{Video: video, Embed: media.EmbedFor(video.VideoID)}})
}

// CreateVideo 后台新增视频
func (a *API) CreateVideo(c *gin.Context) {
	var req service.VideoInput
	if !bindJSON(c, &req, "视频参数不合法") {
		return
	}

	video, err := a.dashboard.AddVideo(c.Request.Context(), req)
	if err != nil {
		a.respondServiceError(c, err, "视频标题与时长不能为空")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "视频创建成功", "video": video})
}

// DeleteVideo 后台删除视频
func (a *API) DeleteVideo(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的视频ID")
		return
	}

	a.dashboard.DeleteVideo(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "视频已删除"})
}

// ListResources 获取资源列表
func (a *API) ListResources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resources": a.dashboard.Snapshot().Resources})
}

// DownloadResource 以纯文本附件导出资源
func (a *API) DownloadResource(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的资源ID")
		return
	}

	resource, err := a.dashboard.Resource(id)
	if err != nil {
		a.respondServiceError(c, err, "资源不存在")
		return
	}

	export := media.ExportResource(resource.Title, resource.Content)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", export.FileName, url.PathEscape(export.FileName)))
	c.Data(http.StatusOK, export.ContentType, export.Body)
}

// RenderResource 将资源内容按 Markdown 渲染为安全 HTML
func (a *API) RenderResource(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的资源ID")
		return
	}

	resource, err := a.dashboard.Resource(id)
	if err != nil {
		a.respondServiceError(c, err, "资源不存在")
		return
	}

	rendered, err := renderMarkdown(resource.Content)
	if err != nil {
		a.respondServiceError(c, err, "渲染资源失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": resource.ID, "title": resource.Title, "html": rendered})
}

// CreateResource 后台新增资源
func (a *API) CreateResource(c *gin.Context) {
	var req service.ResourceInput
	if !bindJSON(c, &req, "资源参数不合法") {
		return
	}

	resource, err := a.dashboard.AddResource(c.Request.Context(), req)
	if err != nil {
		a.respondServiceError(c, err, "资源标题与内容不能为空")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "资源创建成功", "resource": resource})
}

// DeleteResource 后台删除资源
func (a *API) DeleteResource(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的资源ID")
		return
	}

	a.dashboard.DeleteResource(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "资源已删除"})
}
