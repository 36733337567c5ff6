package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wellcampus/internal/service"
)

type generateMealsRequest struct {
	Preference string `json:"preference" binding:"required"`
}

// ListMeals 获取餐食列表与当日热量
func (a *API) ListMeals(c *gin.Context) {
	state := a.dashboard.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"meals":             state.Meals,
		"dailyCalories":     state.DailyCalories,
		"isGeneratingMeals": state.Generating,
	})
}

// GenerateMeals 启动一次延迟生成，立即返回 202
func (a *API) GenerateMeals(c *gin.Context) {
	var req generateMealsRequest
	if !bindJSON(c, &req, "请选择饮食偏好") {
		return
	}

	task, err := a.dashboard.GenerateMeals(req.Preference)
	if err != nil {
		a.respondServiceError(c, err, "不支持的饮食偏好")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"preference":        task.Preference,
		"state":             task.State().String(),
		"isGeneratingMeals": true,
	})
}

// GenerationStatus 报告是否仍在生成
func (a *API) GenerationStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"isGeneratingMeals": a.dashboard.IsGenerating()})
}

// LogMeal 手动记录一餐
func (a *API) LogMeal(c *gin.Context) {
	var req service.ManualMealInput
	if !bindJSON(c, &req, "餐食参数不合法") {
		return
	}

	meal, err := a.dashboard.LogMeal(c.Request.Context(), req)
	if err != nil {
		a.respondServiceError(c, err, "餐食记录不合法")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"meal":          meal,
		"dailyCalories": a.dashboard.Snapshot().DailyCalories,
	})
}

// CreateMeal 后台新增餐食
func (a *API) CreateMeal(c *gin.Context) {
	var req service.MealInput
	if !bindJSON(c, &req, "餐食参数不合法") {
		return
	}

	meal, err := a.dashboard.AddMeal(c.Request.Context(), req)
	if err != nil {
		a.respondServiceError(c, err, "餐食参数不合法")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "餐食创建成功", "meal": meal})
}

// DeleteMeal 删除餐食
func (a *API) DeleteMeal(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的餐食ID")
		return
	}

	a.dashboard.DeleteMeal(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "餐食已删除"})
}
