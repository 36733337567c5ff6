package service

import (
	"context"
	"sync"
	"time"
)

// 饮食偏好
const (
	PreferenceVeg    = "Veg"
	PreferenceNonVeg = "Non-Veg"
	PreferenceMix    = "Mix"
)

// GenerationTopic 是生成状态变化时广播的主题，与槽位名并列
const GenerationTopic = "meal_generation"

// GenerationState 是餐食生成任务的状态
type GenerationState int

const (
	GenerationPending GenerationState = iota
	GenerationResolved
	GenerationSuperseded
	GenerationCancelled
)

func (s GenerationState) String() string {
	switch s {
	case GenerationPending:
		return "pending"
	case GenerationResolved:
		return "resolved"
	case GenerationSuperseded:
		return "superseded"
	case GenerationCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type cannedMeal struct {
	Type  string
	Title string
	Cal   int
	Tags  []string
}

var cannedMeals = map[string][]cannedMeal{
	PreferenceVeg: {
		{Type: MealVeg, Title: "Mediterranean Chickpea Salad", Cal: 380, Tags: []string{"AI Suggested", "Fiber"}},
		{Type: MealVeg, Title: "Spinach & Paneer Wrap", Cal: 420, Tags: []string{"AI Suggested", "Protein"}},
	},
	PreferenceNonVeg: {
		{Type: MealNonVeg, Title: "Lemon Herb Salmon", Cal: 550, Tags: []string{"AI Suggested", "Omega-3"}},
		{Type: MealNonVeg, Title: "Grilled Chicken Salad", Cal: 400, Tags: []string{"AI Suggested", "Lean"}},
	},
	PreferenceMix: {
		{Type: MealVeg, Title: "Buddha Bowl with Hummus", Cal: 420, Tags: []string{"AI Suggested", "Fiber"}},
		{Type: MealNonVeg, Title: "Teriyaki Chicken Rice", Cal: 550, Tags: []string{"AI Suggested", "Balanced"}},
	},
}

// GenerationTask 是一次延迟执行的餐食生成。
// 状态只会从 pending 迁移一次：到期应用结果为 resolved，被新任务取代为 superseded，被取消为 cancelled。
type GenerationTask struct {
	Preference string

	mu    sync.Mutex
	state GenerationState
	done  chan struct{}

	stop context.CancelFunc
	d    *Dashboard
}

// State 返回当前状态
func (t *GenerationTask) State() GenerationState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Done 在任务离开 pending 后关闭
func (t *GenerationTask) Done() <-chan struct{} {
	return t.done
}

// Wait 阻塞直到任务结束或 ctx 结束，返回最终状态
func (t *GenerationTask) Wait(ctx context.Context) (GenerationState, error) {
	select {
	case <-t.done:
		return t.State(), nil
	case <-ctx.Done():
		return t.State(), ctx.Err()
	}
}

// Cancel 放弃尚未执行的生成，已结束的任务不受影响
func (t *GenerationTask) Cancel() {
	t.d.mu.Lock()
	if t.d.generation == t {
		t.d.generation = nil
	}
	cancelled := t.finish(GenerationCancelled)
	t.d.mu.Unlock()
	t.stop()
	if cancelled {
		t.d.notify(GenerationTopic)
	}
}

// finish 由持有 d.mu 的调用方执行，重复调用为空操作
func (t *GenerationTask) finish(state GenerationState) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != GenerationPending {
		return false
	}
	t.state = state
	close(t.done)
	return true
}

// IsGenerating 报告是否有待执行的生成任务
func (d *Dashboard) IsGenerating() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation != nil
}

// GenerateMeals 进入生成状态，并在固定延迟后用预设餐食替换所有非 User Log 餐食。
// 进行中再次调用会取代上一个任务，上一个任务的结果不会被应用。
func (d *Dashboard) GenerateMeals(preference string) (*GenerationTask, error) {
	if _, ok := cannedMeals[preference]; !ok {
		err := invalid(ReasonInvalidPreference, "Preference")
		d.observe("generate_meals", err)
		return nil, err
	}

	taskCtx, stop := context.WithCancel(context.Background())
	task := &GenerationTask{
		Preference: preference,
		state:      GenerationPending,
		done:       make(chan struct{}),
		stop:       stop,
		d:          d,
	}

	d.mu.Lock()
	if previous := d.generation; previous != nil {
		previous.finish(GenerationSuperseded)
		previous.stop()
	}
	d.generation = task
	delay := d.delay
	d.mu.Unlock()

	d.observe("generate_meals", nil)
	d.notify(GenerationTopic)
	go d.runGeneration(taskCtx, task, delay)
	return task, nil
}

func (d *Dashboard) runGeneration(ctx context.Context, task *GenerationTask, delay time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		d.resolveGeneration(task)
	case <-ctx.Done():
	}
}

func (d *Dashboard) resolveGeneration(task *GenerationTask) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.generation != task {
		return
	}

	meals := make([]Meal, 0, len(d.meals)+2)
	for _, m := range d.meals {
		if m.HasTag(TagUserLog) {
			meals = append(meals, m)
		}
	}
	for _, c := range cannedMeals[task.Preference] {
		meals = append(meals, Meal{
			ID:    d.ids.Next(),
			Type:  c.Type,
			Title: c.Title,
			Cal:   c.Cal,
			Tags:  append([]string(nil), c.Tags...),
		})
	}

	d.generation = nil
	d.setMealsLocked(context.Background(), meals)
	task.finish(GenerationResolved)
	task.stop()
}
