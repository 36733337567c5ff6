package store

import (
	"encoding/json"
	"slices"
)

// IDSet 是事件 ID 的集合。
// 存储约定：编码为升序去重的 JSON 数组，解码时数组中的重复项合并为一个成员。
type IDSet map[int64]struct{}

// NewIDSet 由给定 ID 构造集合
func NewIDSet(ids ...int64) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has 判断成员
func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Add 加入成员
func (s IDSet) Add(id int64) {
	s[id] = struct{}{}
}

// Remove 移除成员
func (s IDSet) Remove(id int64) {
	delete(s, id)
}

// Sorted 返回升序成员列表
func (s IDSet) Sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clone 复制集合
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
