package service

import (
	"context"
	"strings"

	"github.com/wellcampus/internal/store"
)

// SubmitPost 发布社区动态并置于最前。文本仅去除首尾空白后原样保存，由客户端按纯文本展示。
func (d *Dashboard) SubmitPost(ctx context.Context, text string) (post CommunityPost, err error) {
	defer func() { d.observe("submit_post", err) }()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return CommunityPost{}, invalid(ReasonMissingRequiredField, "Text")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	post = CommunityPost{
		ID:   d.ids.Next(),
		Tag:  defaultPostTag,
		Text: trimmed,
	}
	d.posts = append([]CommunityPost{post}, d.posts...)
	persist(ctx, d, store.SlotPosts, d.posts)
	return post, nil
}
