package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/wellcampus/internal/store"
)

// ReminderMessage 是设置提醒后给用户的确认文案
const ReminderMessage = "Reminder set! We will notify you 1 hour before the event."

const registrationTimeLayout = "1/2/2006, 3:04:05 PM"

// RegistrationResult 描述一次报名切换的结果
type RegistrationResult struct {
	EventID      int64         `json:"eventId"`
	Registered   bool          `json:"registered"`
	Registration *Registration `json:"registration,omitempty"`
}

// ReminderResult 描述一次提醒切换的结果
type ReminderResult struct {
	EventID int64  `json:"eventId"`
	Set     bool   `json:"reminderSet"`
	Message string `json:"message,omitempty"`
}

// EventInput 定义后台创建活动时可配置字段
type EventInput struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// ToggleRegistration 切换报名状态。
// 已报名则取消，报名记录保留；未报名则加入集合并追加一条报名记录。
// 重新报名会产生第二条记录，记录是活动日志而非名额台账。
func (d *Dashboard) ToggleRegistration(ctx context.Context, eventID int64, user Profile) (result RegistrationResult, err error) {
	defer func() { d.observe("register", err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	result.EventID = eventID
	next := d.registered.Clone()
	if next.Has(eventID) {
		next.Remove(eventID)
		d.registered = next
		persist(ctx, d, store.SlotRegistered, d.registered)
		return result, nil
	}

	if !d.hasEventLocked(eventID) {
		return result, fmt.Errorf("register event %d: %w", eventID, ErrNotFound)
	}

	next.Add(eventID)
	d.registered = next
	persist(ctx, d, store.SlotRegistered, d.registered)

	record := Registration{
		ID:        d.ids.Next(),
		EventID:   eventID,
		UserEmail: fallbackString(user.Email, "Unknown"),
		UserName:  fallbackString(user.Name, "Member"),
		Timestamp: d.now().Format(registrationTimeLayout),
	}
	d.registrations = append(slices.Clone(d.registrations), record)
	persist(ctx, d, store.SlotRegistrations, d.registrations)

	result.Registered = true
	result.Registration = &record
	return result, nil
}

// ToggleReminder 切换提醒，不生成附加记录，也不安排真实通知。
func (d *Dashboard) ToggleReminder(ctx context.Context, eventID int64) (result ReminderResult, err error) {
	defer func() { d.observe("remind", err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	result.EventID = eventID
	next := d.reminders.Clone()
	if next.Has(eventID) {
		next.Remove(eventID)
		d.reminders = next
		persist(ctx, d, store.SlotReminders, d.reminders)
		return result, nil
	}

	if !d.hasEventLocked(eventID) {
		return result, fmt.Errorf("remind event %d: %w", eventID, ErrNotFound)
	}

	next.Add(eventID)
	d.reminders = next
	persist(ctx, d, store.SlotReminders, d.reminders)

	result.Set = true
	result.Message = ReminderMessage
	return result, nil
}

// RegistrationsForEvent 返回指定活动的全部报名记录，活动被删除后依然可查。
func (d *Dashboard) RegistrationsForEvent(eventID int64) []Registration {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Registration, 0)
	for _, r := range d.registrations {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out
}

// AddEvent 新建活动并置于列表最前
func (d *Dashboard) AddEvent(ctx context.Context, input EventInput) (event Event, err error) {
	defer func() { d.observe("add_event", err) }()

	input = normalizeEventInput(input)
	if err := validateInput(input); err != nil {
		return Event{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	event = Event{
		ID:          d.ids.Next(),
		Title:       input.Title,
		Category:    fallbackString(input.Category, defaultCategory),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Time:        input.Time,
		Location:    input.Location,
		Description: input.Description,
	}
	d.events = append([]Event{event}, d.events...)
	persist(ctx, d, store.SlotEvents, d.events)
	return event, nil
}

// DeleteEvent 按 ID 删除活动，不级联删除报名记录；ID 不存在时为空操作。
func (d *Dashboard) DeleteEvent(ctx context.Context, id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.events = removeByID(d.events, id, func(e Event) int64 { return e.ID })
	persist(ctx, d, store.SlotEvents, d.events)
	d.observe("delete_event", nil)
}

func (d *Dashboard) hasEventLocked(id int64) bool {
	for _, e := range d.events {
		if e.ID == id {
			return true
		}
	}
	return false
}

func normalizeEventInput(input EventInput) EventInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.EndDate = strings.TrimSpace(input.EndDate)
	input.Time = strings.TrimSpace(input.Time)
	input.Location = strings.TrimSpace(input.Location)
	input.Description = strings.TrimSpace(input.Description)
	return input
}

func fallbackString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// removeByID 返回去掉指定 ID 后的新切片，原切片不被修改
func removeByID[T any](items []T, id int64, idOf func(T) int64) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
