package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wellcampus/internal/logger"
)

// 槽位名与原有浏览器存储保持一致
const (
	SlotVideos        = "wc_videos"
	SlotMeals         = "wc_meals"
	SlotEvents        = "wc_events"
	SlotPosts         = "wc_posts"
	SlotResources     = "wc_resources"
	SlotRegistrations = "wc_registrations"
	SlotRegistered    = "wc_registered"
	SlotReminders     = "wc_reminders"
	SlotChecklist     = "wc_checklist"
	SlotCalories      = "wc_calories"
	SlotUserLogs      = "wc_user_logs"
)

// Slots 列出全部已知槽位
var Slots = []string{
	SlotVideos,
	SlotMeals,
	SlotEvents,
	SlotPosts,
	SlotResources,
	SlotRegistrations,
	SlotRegistered,
	SlotReminders,
	SlotChecklist,
	SlotCalories,
	SlotUserLogs,
}

// IsKnownSlot 判断是否为已知槽位
func IsKnownSlot(key string) bool {
	for _, slot := range Slots {
		if slot == key {
			return true
		}
	}
	return false
}

// Store 在 Backend 之上提供 JSON 编码的槽位读写。
// 读取失败回退到默认值，写入失败只记录日志与计数，从不向调用方传播。
type Store struct {
	backend  Backend
	log      *logger.Logger
	failures prometheus.Counter
}

// Option 配置 Store
type Option func(*Store)

// WithLogger 设置日志实例
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFailureCounter 设置写入失败计数器
func WithFailureCounter(c prometheus.Counter) Option {
	return func(s *Store) {
		s.failures = c
	}
}

// New 构造 Store
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend 返回底层存储，供运维命令直接读写原始字节。
func (s *Store) Backend() Backend {
	return s.backend
}

// Load 读取 key 对应的 JSON 并解码为 T；槽位缺失、为 null 或格式损坏时返回 fallback。
func Load[T any](ctx context.Context, s *Store, key string, fallback T) T {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warnw("load slot failed, using default", "slot", key, "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fallback
	}

	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		s.log.Warnw("malformed slot, using default", "slot", key, "error", err)
		return fallback
	}
	return value
}

// Save 将 value 的完整 JSON 编码写入 key。
func Save[T any](ctx context.Context, s *Store, key string, value T) {
	if err := s.save(ctx, key, value); err != nil {
		s.log.Errorw("persist slot failed", "slot", key, "error", err)
		if s.failures != nil {
			s.failures.Inc()
		}
	}
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", key, err)
	}
	return s.backend.Put(ctx, key, encoded)
}
