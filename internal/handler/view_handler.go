package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wellcampus/internal/media"
	"github.com/wellcampus/internal/service"
)

type viewBuilder func(state service.State, profile service.Profile) gin.H

type viewRoute struct {
	role  string
	build viewBuilder
}

// viewRoutes 将 (角色, 标签页) 映射到视图构造函数
var viewRoutes = map[string]viewRoute{
	"dashboard":       {role: service.RoleStudent, build: dashboardView},
	"events":          {role: service.RoleStudent, build: eventsView},
	"fitness":         {role: service.RoleStudent, build: fitnessView},
	"nutrition":       {role: service.RoleStudent, build: nutritionView},
	"community":       {role: service.RoleStudent, build: communityView},
	"appointments":    {role: service.RoleStudent, build: appointmentsView},
	"admin_overview":  {role: service.RoleAdmin, build: adminOverviewView},
	"admin_resources": {role: service.RoleAdmin, build: adminResourcesView},
	"admin_alerts":    {role: service.RoleAdmin, build: adminAlertsView},
}

// GetView 按当前角色渲染标签页数据。未知标签页 404，其他角色的标签页 403。
func (a *API) GetView(c *gin.Context) {
	tab := c.Param("tab")
	route, ok := viewRoutes[tab]
	if !ok {
		respondError(c, http.StatusNotFound, "页面不存在")
		return
	}

	profile := currentProfile(c)
	if profile.Role != route.role {
		respondError(c, http.StatusForbidden, "无权访问该页面")
		return
	}

	payload := route.build(a.dashboard.Snapshot(), profile)
	payload["tab"] = tab
	payload["profile"] = profile
	c.JSON(http.StatusOK, payload)
}

func dashboardView(state service.State, _ service.Profile) gin.H {
	var upNext *service.Event
	if len(state.Events) > 0 {
		event := state.Events[0]
		upNext = &event
	}
	return gin.H{
		"wellnessScore":   state.WellnessScore,
		"stressLevel":     state.StressLevel,
		"registeredCount": len(state.Registered),
		"metrics":         state.Metrics,
		"dailyCalories":   state.DailyCalories,
		"checklist":       state.Checklist,
		"checklistKeys":   service.ChecklistKeys,
		"completedGoals":  state.Checklist.CompletedCount(),
		"upNext":          upNext,
	}
}

func eventsView(state service.State, _ service.Profile) gin.H {
	return gin.H{"events": buildEventViews(state)}
}

func fitnessView(state service.State, _ service.Profile) gin.H {
	return gin.H{"videos": buildVideoViews(state.Videos)}
}

func nutritionView(state service.State, _ service.Profile) gin.H {
	return gin.H{
		"meals":             state.Meals,
		"dailyCalories":     state.DailyCalories,
		"isGeneratingMeals": state.Generating,
		"preferences":       []string{service.PreferenceVeg, service.PreferenceNonVeg, service.PreferenceMix},
	}
}

func communityView(state service.State, _ service.Profile) gin.H {
	return gin.H{"posts": state.Posts}
}

func appointmentsView(state service.State, _ service.Profile) gin.H {
	return gin.H{
		"mapQuery":    state.MapQuery,
		"mapEmbedUrl": media.MapEmbedURL(state.MapQuery, media.ZoomSearch),
	}
}

func adminOverviewView(state service.State, _ service.Profile) gin.H {
	return gin.H{
		"userLogs": state.UserLogs,
		"counts": gin.H{
			"videos":        len(state.Videos),
			"meals":         len(state.Meals),
			"events":        len(state.Events),
			"posts":         len(state.Posts),
			"resources":     len(state.Resources),
			"registrations": len(state.Registrations),
		},
	}
}

func adminResourcesView(state service.State, _ service.Profile) gin.H {
	return gin.H{
		"videos":    state.Videos,
		"meals":     state.Meals,
		"resources": state.Resources,
	}
}

type eventRegistrations struct {
	service.Event
	Registrations []service.Registration `json:"registrations"`
}

func adminAlertsView(state service.State, _ service.Profile) gin.H {
	byEvent := make(map[int64][]service.Registration)
	for _, r := range state.Registrations {
		byEvent[r.EventID] = append(byEvent[r.EventID], r)
	}

	events := make([]eventRegistrations, 0, len(state.Events))
	for _, event := range state.Events {
		records := byEvent[event.ID]
		if records == nil {
			records = []service.Registration{}
		}
		events = append(events, eventRegistrations{Event: event, Registrations: records})
	}
	return gin.H{
		"events":           events,
		"allRegistrations": state.Registrations,
	}
}
