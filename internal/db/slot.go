package db

import (
	"time"

	"gorm.io/datatypes"
)

// Slot 存储一个集合的完整 JSON 编码，Key 即槽位名（如 wc_events）。
// Value 以文本列原样保存写入的字节，读取方负责校验与回退。
// 列类型固定为 text：JSON 列在 SQLite 上带数值亲和性，标量会被存成整数。
type Slot struct {
	ID        uint   `gorm:"primarykey"`
	Key       string `gorm:"size:100;uniqueIndex;not null"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName 自定义表名以保持命名一致。
func (Slot) TableName() string {
	return "slots"
}

// JSON 返回槽位值的 JSON 视图
func (s Slot) JSON() datatypes.JSON {
	return datatypes.JSON(s.Value)
}
