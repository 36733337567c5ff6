package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wellcampus/internal/media"
	"github.com/wellcampus/internal/store"
)

// VideoInput 定义后台新增视频的字段，VideoID 可为分享链接或原始 ID
type VideoInput struct {
	Title    string `json:"title" validate:"required"`
	Duration string `json:"duration" validate:"required"`
	VideoID  string `json:"videoId"`
}

// ResourceInput 定义后台新增资源的字段
type ResourceInput struct {
	Title   string `json:"title" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=Guide Plan"`
	Content string `json:"content" validate:"required"`
}

// AddVideo 新增视频并追加到末尾，未提供视频 ID 时使用默认视频
func (d *Dashboard) AddVideo(ctx context.Context, input VideoInput) (video Video, err error) {
	defer func() { d.observe("add_video", err) }()

	input.Title = strings.TrimSpace(input.Title)
	input.Duration = strings.TrimSpace(input.Duration)
	input.VideoID = strings.TrimSpace(input.VideoID)
	if err := validateInput(input); err != nil {
		return Video{}, err
	}

	videoID := defaultVideoID
	if input.VideoID != "" {
		videoID = media.ExtractVideoID(input.VideoID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	video = Video{
		ID:       d.ids.Next(),
		Title:    input.Title,
		Duration: input.Duration,
		Thumb:    defaultVideoThumb,
		VideoID:  videoID,
	}
	videos := make([]Video, 0, len(d.videos)+1)
	videos = append(videos, d.videos...)
	d.videos = append(videos, video)
	persist(ctx, d, store.SlotVideos, d.videos)
	return video, nil
}

// DeleteVideo 按 ID 删除视频，ID 不存在时为空操作
func (d *Dashboard) DeleteVideo(ctx context.Context, id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.videos = removeByID(d.videos, id, func(v Video) int64 { return v.ID })
	persist(ctx, d, store.SlotVideos, d.videos)
	d.observe("delete_video", nil)
}

// Video 按 ID 查找视频
func (d *Dashboard) Video(id int64) (Video, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, v := range d.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return Video{}, fmt.Errorf("video %d: %w", id, ErrNotFound)
}

// AddResource 新增资源并追加到末尾，类型缺省为 Guide
func (d *Dashboard) AddResource(ctx context.Context, input ResourceInput) (resource Resource, err error) {
	defer func() { d.observe("add_resource", err) }()

	input.Title = strings.TrimSpace(input.Title)
	input.Type = strings.TrimSpace(input.Type)
	if strings.TrimSpace(input.Content) == "" {
		input.Content = ""
	}
	if err := validateInput(input); err != nil {
		return Resource{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	resource = Resource{
		ID:      d.ids.Next(),
		Title:   input.Title,
		Type:    fallbackString(input.Type, ResourceGuide),
		Content: input.Content,
	}
	resources := make([]Resource, 0, len(d.resources)+1)
	resources = append(resources, d.resources...)
	d.resources = append(resources, resource)
	persist(ctx, d, store.SlotResources, d.resources)
	return resource, nil
}

// DeleteResource 按 ID 删除资源，ID 不存在时为空操作
func (d *Dashboard) DeleteResource(ctx context.Context, id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.resources = removeByID(d.resources, id, func(r Resource) int64 { return r.ID })
	persist(ctx, d, store.SlotResources, d.resources)
	d.observe("delete_resource", nil)
}

// Resource 按 ID 查找资源
func (d *Dashboard) Resource(id int64) (Resource, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, r := range d.resources {
		if r.ID == id {
			return r, nil
		}
	}
	return Resource{}, fmt.Errorf("resource %d: %w", id, ErrNotFound)
}
