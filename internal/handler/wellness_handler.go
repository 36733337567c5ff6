package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wellcampus/internal/media"
	"github.com/wellcampus/internal/service"
)

type mapSearchRequest struct {
	Query string `json:"query"`
}

func metricsPayload(state service.State) gin.H {
	return gin.H{
		"metrics":       state.Metrics,
		"checklist":     state.Checklist,
		"wellnessScore": state.WellnessScore,
		"stressLevel":   state.StressLevel,
		"dailyCalories": state.DailyCalories,
	}
}

// GetMetrics 获取自报指标、清单与派生分数
func (a *API) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, metricsPayload(a.dashboard.Snapshot()))
}

// UpdateMetrics 修改自报指标，越界值被截断
func (a *API) UpdateMetrics(c *gin.Context) {
	var req service.MetricsUpdate
	if !bindJSON(c, &req, "指标参数不合法") {
		return
	}

	a.dashboard.UpdateMetrics(req)
	c.JSON(http.StatusOK, metricsPayload(a.dashboard.Snapshot()))
}

// ToggleChecklist 翻转一个每日目标
func (a *API) ToggleChecklist(c *gin.Context) {
	key := strings.ToLower(strings.TrimSpace(c.Param("key")))

	if _, err := a.dashboard.ToggleChecklist(c.Request.Context(), key); err != nil {
		a.respondServiceError(c, err, "未知的清单项")
		return
	}
	c.JSON(http.StatusOK, metricsPayload(a.dashboard.Snapshot()))
}

// SearchMap 更新医疗机构地图查询
func (a *API) SearchMap(c *gin.Context) {
	var req mapSearchRequest
	if !bindJSON(c, &req, "查询参数不合法") {
		return
	}

	query := a.dashboard.SearchMap(strings.TrimSpace(req.Query))
	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"mapEmbedUrl": media.MapEmbedURL(query, media.ZoomSearch),
	})
}
