package service

import (
	"sync"
	"time"
)

// Clock 提供当前时间，测试中可替换
type Clock func() time.Time

// idGenerator 以毫秒时间戳生成 ID，同一毫秒内多次调用时顺延，保证严格递增。
type idGenerator struct {
	mu   sync.Mutex
	now  Clock
	last int64
}

func newIDGenerator(now Clock) *idGenerator {
	return &idGenerator{now: now}
}

func (g *idGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe 将已加载集合中的最大 ID 纳入起点，避免与历史数据冲突
func (g *idGenerator) observe(ids ...int64) {
	g.mu.Lock()
	for _, id := range ids {
		if id > g.last {
			g.last = id
		}
	}
	g.mu.Unlock()
}
