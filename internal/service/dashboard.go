package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/wellcampus/internal/logger"
	"github.com/wellcampus/internal/metrics"
	"github.com/wellcampus/internal/store"
)

// DefaultMapQuery 是地图面板的初始查询
const DefaultMapQuery = "hospitals doctors clinics near me"

// Notifier 在某个槽位写回后收到通知，用于驱动视图刷新。
type Notifier interface {
	SlotChanged(slot string)
}

// Options 配置 Dashboard
type Options struct {
	Clock           Clock
	GenerationDelay time.Duration
	Logger          *logger.Logger
	Metrics         *metrics.Metrics
	Notifier        Notifier
}

// Dashboard 持有整个会话的集合状态。
// 每个动作在锁内校验、修改一个集合并立即写回对应槽位；存储只是镜像，加载后以内存为准。
type Dashboard struct {
	mu sync.Mutex

	store    *store.Store
	ids      *idGenerator
	now      Clock
	log      *logger.Logger
	metrics  *metrics.Metrics
	notifier Notifier
	delay    time.Duration

	videos        []Video
	meals         []Meal
	events        []Event
	posts         []CommunityPost
	resources     []Resource
	registrations []Registration
	userLogs      []UserLog
	registered    store.IDSet
	reminders     store.IDSet
	checklist     Checklist
	dailyCalories int

	inputs     MetricInputs
	mapQuery   string
	generation *GenerationTask
}

// NewDashboard 从存储加载全部槽位，缺失或损坏的槽位使用内置默认值。
func NewDashboard(ctx context.Context, st *store.Store, opts Options) *Dashboard {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	d := &Dashboard{
		store:    st,
		ids:      newIDGenerator(now),
		now:      now,
		log:      log,
		metrics:  opts.Metrics,
		notifier: opts.Notifier,
		delay:    opts.GenerationDelay,
		inputs:   DefaultMetricInputs(),
		mapQuery: DefaultMapQuery,
	}

	d.videos = store.Load(ctx, st, store.SlotVideos, defaultVideos())
	d.meals = store.Load(ctx, st, store.SlotMeals, defaultMeals())
	d.events = store.Load(ctx, st, store.SlotEvents, defaultEvents())
	d.posts = store.Load(ctx, st, store.SlotPosts, defaultPosts())
	d.resources = store.Load(ctx, st, store.SlotResources, defaultResources())
	d.registrations = store.Load(ctx, st, store.SlotRegistrations, []Registration{})
	d.userLogs = store.Load(ctx, st, store.SlotUserLogs, []UserLog{})
	d.registered = store.Load(ctx, st, store.SlotRegistered, store.NewIDSet())
	d.reminders = store.Load(ctx, st, store.SlotReminders, store.NewIDSet())
	d.checklist = store.Load(ctx, st, store.SlotChecklist, Checklist{})
	d.dailyCalories = sumUserLogCalories(d.meals)

	d.observeLoadedIDs()
	return d
}

func (d *Dashboard) observeLoadedIDs() {
	var ids []int64
	for _, v := range d.videos {
		ids = append(ids, v.ID)
	}
	for _, m := range d.meals {
		ids = append(ids, m.ID)
	}
	for _, e := range d.events {
		ids = append(ids, e.ID)
	}
	for _, p := range d.posts {
		ids = append(ids, p.ID)
	}
	for _, r := range d.resources {
		ids = append(ids, r.ID)
	}
	for _, r := range d.registrations {
		ids = append(ids, r.ID)
	}
	for _, l := range d.userLogs {
		ids = append(ids, l.ID)
	}
	d.ids.observe(ids...)
}

// Close 取消进行中的餐食生成
func (d *Dashboard) Close() {
	d.mu.Lock()
	task := d.generation
	d.mu.Unlock()
	if task != nil {
		task.Cancel()
	}
}

// persist 写回槽位并通知监听方，调用方须持有 d.mu。
func persist[T any](ctx context.Context, d *Dashboard, slot string, value T) {
	store.Save(ctx, d.store, slot, value)
	d.notify(slot)
}

func (d *Dashboard) notify(topic string) {
	if d.notifier != nil {
		d.notifier.SlotChanged(topic)
	}
}

func (d *Dashboard) observe(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	d.metrics.ObserveAction(action, outcome)
}

// State 是某一时刻的完整只读快照
type State struct {
	Videos        []Video         `json:"videos"`
	Meals         []Meal          `json:"meals"`
	Events        []Event         `json:"events"`
	Posts         []CommunityPost `json:"posts"`
	Resources     []Resource      `json:"resources"`
	Registrations []Registration  `json:"registrations"`
	UserLogs      []UserLog       `json:"userLogs"`
	Registered    []int64         `json:"registeredEvents"`
	Reminders     []int64         `json:"reminderEvents"`
	Checklist     Checklist       `json:"checklist"`
	DailyCalories int             `json:"dailyCalories"`
	Metrics       MetricInputs    `json:"metrics"`
	WellnessScore int             `json:"wellnessScore"`
	StressLevel   string          `json:"stressLevel"`
	Generating    bool            `json:"isGeneratingMeals"`
	MapQuery      string          `json:"mapQuery"`
}

// Snapshot 返回当前状态的深拷贝，视图层只从快照读取。
func (d *Dashboard) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	meals := make([]Meal, len(d.meals))
	for i, m := range d.meals {
		m.Tags = slices.Clone(m.Tags)
		meals[i] = m
	}

	return State{
		Videos:        slices.Clone(d.videos),
		Meals:         meals,
		Events:        slices.Clone(d.events),
		Posts:         slices.Clone(d.posts),
		Resources:     slices.Clone(d.resources),
		Registrations: slices.Clone(d.registrations),
		UserLogs:      slices.Clone(d.userLogs),
		Registered:    d.registered.Sorted(),
		Reminders:     d.reminders.Sorted(),
		Checklist:     d.checklist,
		DailyCalories: d.dailyCalories,
		Metrics:       d.inputs,
		WellnessScore: WellnessScore(d.inputs, d.checklist),
		StressLevel:   StressLevel(d.inputs.SleepHours),
		Generating:    d.generation != nil,
		MapQuery:      d.mapQuery,
	}
}
