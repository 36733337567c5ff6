package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wellcampus/internal/media"
	"github.com/wellcampus/internal/service"
)

type eventView struct {
	service.Event
	Registered  bool   `json:"registered"`
	ReminderSet bool   `json:"reminderSet"`
	MapEmbedURL string `json:"mapEmbedUrl"`
}

func buildEventViews(state service.State) []eventView {
	registered := make(map[int64]bool, len(state.Registered))
	for _, id := range state.Registered {
		registered[id] = true
	}
	reminders := make(map[int64]bool, len(state.Reminders))
	for _, id := range state.Reminders {
		reminders[id] = true
	}

	views := make([]eventView, 0, len(state.Events))
	for _, event := range state.Events {
		location := event.Location
		if location == "" {
			location = media.DefaultEventLocation
		}
		views = append(views, eventView{
			Event:       event,
			Registered:  registered[event.ID],
			ReminderSet: reminders[event.ID],
			MapEmbedURL: media.MapEmbedURL(location, media.ZoomEvent),
		})
	}
	return views
}

// ListEvents 获取活动列表及当前报名与提醒状态
func (a *API) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": buildEventViews(a.dashboard.Snapshot())})
}

// ToggleRegistration 切换当前用户的活动报名
func (a *API) ToggleRegistration(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	result, err := a.dashboard.ToggleRegistration(c.Request.Context(), id, currentProfile(c))
	if err != nil {
		a.respondServiceError(c, err, "活动不存在")
		return
	}

	message := "已取消报名"
	if result.Registered {
		message = "报名成功"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "result": result})
}

// ToggleReminder 切换活动提醒
func (a *API) ToggleReminder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	result, err := a.dashboard.ToggleReminder(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "活动不存在")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// CreateEvent 后台新建活动
func (a *API) CreateEvent(c *gin.Context) {
	var req service.EventInput
	if !bindJSON(c, &req, "活动参数不合法") {
		return
	}

	event, err := a.dashboard.AddEvent(c.Request.Context(), req)
	if err != nil {
		a.respondServiceError(c, err, "活动名称与开始日期不能为空")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "活动创建成功", "event": event})
}

// DeleteEvent 后台删除活动，报名记录保留
func (a *API) DeleteEvent(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	a.dashboard.DeleteEvent(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "活动已删除"})
}

// EventRegistrations 列出某活动的全部报名记录
func (a *API) EventRegistrations(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": a.dashboard.RegistrationsForEvent(id)})
}
