package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is one persisted document in the kv_records table.
type KVRecord struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text;not null"`
}

// GormKV keeps the documents in a relational table. Used when the service is
// configured with STORAGE_BACKEND=postgres.
type GormKV struct {
	DB *gorm.DB
}

// NewGormKV migrates the kv_records table and wraps db.
func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, err
	}
	return &GormKV{DB: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) (string, bool, error) {
	var rec KVRecord
	err := g.DB.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (g *GormKV) Set(ctx context.Context, key, value string) error {
	rec := KVRecord{Key: key, Value: value}
	return g.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
}

func (g *GormKV) Del(ctx context.Context, key string) error {
	return g.DB.WithContext(ctx).Delete(&KVRecord{}, "key = ?", key).Error
}
