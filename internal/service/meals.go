package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/wellcampus/internal/store"
)

// MaxMealCalories 是单条餐食允许的最大热量
const MaxMealCalories = 100000

// MealInput 定义后台新增餐食的字段，Cal 保留表单原始文本
type MealInput struct {
	Title string `json:"title" validate:"required"`
	Cal   string `json:"cal" validate:"required,number"`
	Type  string `json:"type" validate:"omitempty,oneof=Veg Non-Veg Boost"`
}

// ManualMealInput 定义用户手动记录餐食的字段，Tags 为逗号分隔文本
type ManualMealInput struct {
	Title string `json:"title" validate:"required"`
	Cal   string `json:"cal" validate:"required,number"`
	Type  string `json:"type" validate:"omitempty,oneof=Veg Non-Veg Boost"`
	Tags  string `json:"tags"`
}

// LogMeal 手动记录餐食：无条件追加 User Log 标签，置于列表最前，并重新计算当日热量。
func (d *Dashboard) LogMeal(ctx context.Context, input ManualMealInput) (meal Meal, err error) {
	defer func() { d.observe("log_meal", err) }()

	input.Title = strings.TrimSpace(input.Title)
	input.Cal = strings.TrimSpace(input.Cal)
	input.Type = strings.TrimSpace(input.Type)
	if err := validateInput(input); err != nil {
		return Meal{}, err
	}
	cal, err := parseCalories(input.Cal)
	if err != nil {
		return Meal{}, err
	}

	tags := splitTags(input.Tags)
	tags = append(tags, TagUserLog)

	d.mu.Lock()
	defer d.mu.Unlock()

	meal = Meal{
		ID:    d.ids.Next(),
		Type:  fallbackString(input.Type, MealVeg),
		Title: input.Title,
		Cal:   cal,
		Tags:  tags,
	}
	d.setMealsLocked(ctx, append([]Meal{meal}, d.meals...))
	return meal, nil
}

// AddMeal 后台新增餐食，标记为 New 并追加到末尾
func (d *Dashboard) AddMeal(ctx context.Context, input MealInput) (meal Meal, err error) {
	defer func() { d.observe("add_meal", err) }()

	input.Title = strings.TrimSpace(input.Title)
	input.Cal = strings.TrimSpace(input.Cal)
	input.Type = strings.TrimSpace(input.Type)
	if err := validateInput(input); err != nil {
		return Meal{}, err
	}
	cal, err := parseCalories(input.Cal)
	if err != nil {
		return Meal{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	meal = Meal{
		ID:    d.ids.Next(),
		Type:  fallbackString(input.Type, MealVeg),
		Title: input.Title,
		Cal:   cal,
		Tags:  []string{"New"},
	}
	meals := make([]Meal, 0, len(d.meals)+1)
	meals = append(meals, d.meals...)
	d.setMealsLocked(ctx, append(meals, meal))
	return meal, nil
}

// DeleteMeal 按 ID 删除餐食，ID 不存在时为空操作
func (d *Dashboard) DeleteMeal(ctx context.Context, id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.setMealsLocked(ctx, removeByID(d.meals, id, func(m Meal) int64 { return m.ID }))
	d.observe("delete_meal", nil)
}

// setMealsLocked 替换餐食集合，写回餐食槽位与由其派生的热量镜像
func (d *Dashboard) setMealsLocked(ctx context.Context, meals []Meal) {
	d.meals = meals
	persist(ctx, d, store.SlotMeals, d.meals)

	d.dailyCalories = sumUserLogCalories(d.meals)
	persist(ctx, d, store.SlotCalories, d.dailyCalories)
}

func sumUserLogCalories(meals []Meal) int {
	total := 0
	for _, m := range meals {
		if m.HasTag(TagUserLog) {
			total += m.Cal
		}
	}
	return total
}

// parseCalories 解析非负整数热量，超过 MaxMealCalories 视为无效数字
func parseCalories(raw string) (int, error) {
	cal, err := strconv.Atoi(raw)
	if err != nil || cal < 0 || cal > MaxMealCalories {
		return 0, invalid(ReasonInvalidNumber, "Cal")
	}
	return cal, nil
}

func splitTags(raw string) []string {
	tags := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
