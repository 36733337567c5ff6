package service

// 餐食类型
const (
	MealVeg    = "Veg"
	MealNonVeg = "Non-Veg"
	MealBoost  = "Boost"
)

// 资源类型
const (
	ResourceGuide = "Guide"
	ResourcePlan  = "Plan"
)

// 用户角色
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// TagUserLog 标记手动记录的餐食，批量生成时必须保留
const TagUserLog = "User Log"

// Video 是健身视频条目
type Video struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Thumb    string `json:"thumb"`
	VideoID  string `json:"videoId"`
}

// Meal 是一条餐食建议或记录
type Meal struct {
	ID    int64    `json:"id"`
	Type  string   `json:"type"`
	Title string   `json:"title"`
	Cal   int      `json:"cal"`
	Tags  []string `json:"tags"`
}

// HasTag 判断餐食是否包含标签
func (m Meal) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Event 是校园活动或项目
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Time        string `json:"time,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// CommunityPost 是社区动态
type CommunityPost struct {
	ID       int64  `json:"id"`
	Tag      string `json:"tag"`
	Text     string `json:"text"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}

// Resource 是可下载的指南或计划
type Resource struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Registration 是一次活动报名的历史记录，只追加不删除
type Registration struct {
	ID        int64  `json:"id"`
	EventID   int64  `json:"eventId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Timestamp string `json:"timestamp"`
}

// UserLog 记录一次登录
type UserLog struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Time  string `json:"time"`
	Date  string `json:"date"`
	Day   string `json:"day"`
}

// Checklist 是每日目标清单，键固定
type Checklist struct {
	Water      bool `json:"water"`
	Meditation bool `json:"meditation"`
	Exercise   bool `json:"exercise"`
	Meal       bool `json:"meal"`
}

// ChecklistKeys 按固定顺序列出清单键
var ChecklistKeys = []string{"water", "meditation", "exercise", "meal"}

// CompletedCount 返回已完成的目标数
func (c Checklist) CompletedCount() int {
	count := 0
	for _, done := range []bool{c.Water, c.Meditation, c.Exercise, c.Meal} {
		if done {
			count++
		}
	}
	return count
}

// Toggle 翻转指定键，未知键返回 false
func (c *Checklist) Toggle(key string) bool {
	switch key {
	case "water":
		c.Water = !c.Water
	case "meditation":
		c.Meditation = !c.Meditation
	case "exercise":
		c.Exercise = !c.Exercise
	case "meal":
		c.Meal = !c.Meal
	default:
		return false
	}
	return true
}

// Profile 是登录协作方提供的用户资料
type Profile struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MetricInputs 是自报的健康指标，仅存在于会话内
type MetricInputs struct {
	WaterGlasses int     `json:"waterGlasses"`
	SleepHours   float64 `json:"sleepHours"`
	Mood         string  `json:"mood"`
}
