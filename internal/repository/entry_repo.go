package repository

import (
	"errors"

	"gemblog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// FindByKey retrieves a single entry by its key. The bool is false when no
// entry exists.
func (r *EntryRepository) FindByKey(key string) (*models.Entry, bool, error) {
	var entry models.Entry
	err := r.db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &entry, true, nil
}

// Upsert updates or creates an entry.
func (r *EntryRepository) Upsert(key, value string) error {
	entry := models.Entry{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// DeleteByKey removes an entry. Deleting a missing key is not an error.
func (r *EntryRepository) DeleteByKey(key string) error {
	return r.db.Unscoped().Where("key = ?", key).Delete(&models.Entry{}).Error
}
