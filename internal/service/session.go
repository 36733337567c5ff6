package service

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/wellcampus/internal/media"
	"github.com/wellcampus/internal/store"
)

const (
	loginTimeLayout = "3:04:05 PM"
	loginDateLayout = "1/2/2006"
)

// 各角色登录后的默认标签页
const (
	DefaultStudentTab = "dashboard"
	DefaultAdminTab   = "admin_overview"
)

// DefaultTab 返回角色的默认标签页
func DefaultTab(role string) string {
	if role == RoleAdmin {
		return DefaultAdminTab
	}
	return DefaultStudentTab
}

// NormalizeRole 将角色规范化为 student/admin，未知角色返回空串
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleStudent:
		return RoleStudent
	case RoleAdmin:
		return RoleAdmin
	default:
		return ""
	}
}

// RecordLogin 为一次成功登录追加访问日志（最新在前）
func (d *Dashboard) RecordLogin(ctx context.Context, profile Profile) UserLog {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	entry := UserLog{
		ID:    d.ids.Next(),
		Name:  fallbackString(profile.Name, "Admin"),
		Email: profile.Email,
		Role:  profile.Role,
		Time:  now.Format(loginTimeLayout),
		Date:  now.Format(loginDateLayout),
		Day:   now.Weekday().String(),
	}
	d.userLogs = append([]UserLog{entry}, d.userLogs...)
	persist(ctx, d, store.SlotUserLogs, d.userLogs)
	d.observe("login", nil)
	return entry
}

// UserLogs 返回登录日志
func (d *Dashboard) UserLogs() []UserLog {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.userLogs)
}

// ToggleChecklist 翻转一个每日目标并整体写回清单
func (d *Dashboard) ToggleChecklist(ctx context.Context, key string) (checklist Checklist, err error) {
	defer func() { d.observe("toggle_checklist", err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.checklist
	if !next.Toggle(key) {
		return d.checklist, invalid(ReasonInvalidKey, "Key")
	}
	d.checklist = next
	persist(ctx, d, store.SlotChecklist, d.checklist)
	return d.checklist, nil
}

// MetricsTopic 是指标变化时广播的主题
const MetricsTopic = "metrics"

// MetricsUpdate 是一次指标修改，nil 字段保持不变
type MetricsUpdate struct {
	WaterGlasses *int     `json:"waterGlasses"`
	SleepHours   *float64 `json:"sleepHours"`
	Mood         *string  `json:"mood"`
}

// UpdateMetrics 修改会话内的自报指标。饮水限制在 0..8 杯，睡眠限制在 0..24 小时。
func (d *Dashboard) UpdateMetrics(update MetricsUpdate) MetricInputs {
	d.mu.Lock()
	defer d.mu.Unlock()

	if update.WaterGlasses != nil {
		d.inputs.WaterGlasses = min(8, max(0, *update.WaterGlasses))
	}
	if update.SleepHours != nil && !math.IsNaN(*update.SleepHours) {
		d.inputs.SleepHours = math.Min(24, math.Max(0, *update.SleepHours))
	}
	if update.Mood != nil {
		if mood := strings.ToLower(strings.TrimSpace(*update.Mood)); mood != "" {
			d.inputs.Mood = mood
		}
	}
	d.notify(MetricsTopic)
	return d.inputs
}

// Metrics 返回当前指标
func (d *Dashboard) Metrics() MetricInputs {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inputs
}

// SearchMap 规范化地图查询并保存为当前查询；空查询不改变状态。
func (d *Dashboard) SearchMap(query string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if normalized := media.NormalizeMapQuery(query); normalized != "" {
		d.mapQuery = normalized
	}
	return d.mapQuery
}
