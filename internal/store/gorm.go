package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/wellcampus/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend 将槽位保存在 slots 表中，每个键一行。
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend 构造 GormBackend
func NewGormBackend(gdb *gorm.DB) *GormBackend {
	return &GormBackend{db: gdb}
}

func (b *GormBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var slot db.Slot
	if err := b.db.WithContext(ctx).Where("key = ?", key).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get slot %s: %w", key, err)
	}
	return []byte(slot.JSON()), true, nil
}

func (b *GormBackend) Put(ctx context.Context, key string, value []byte) error {
	slot := db.Slot{Key: key, Value: string(value)}
	if err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      string(value),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&slot).Error; err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}

func (b *GormBackend) Delete(ctx context.Context, key string) error {
	if err := b.db.WithContext(ctx).Where("key = ?", key).Delete(&db.Slot{}).Error; err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

func (b *GormBackend) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := b.db.WithContext(ctx).Model(&db.Slot{}).Order("key ASC").Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return keys, nil
}
