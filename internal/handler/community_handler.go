package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Text string `json:"text"`
}

// ListPosts 获取社区动态
func (a *API) ListPosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"posts": a.dashboard.Snapshot().Posts})
}

// CreatePost 发布社区动态
func (a *API) CreatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "动态内容不能为空") {
		return
	}

	post, err := a.dashboard.SubmitPost(c.Request.Context(), req.Text)
	if err != nil {
		a.respondServiceError(c, err, "动态内容不能为空")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}
