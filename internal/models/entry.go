package models

import "gorm.io/gorm"

// Entry is one row of the durable key/value store.
type Entry struct {
	gorm.Model
	Key   string `gorm:"type:varchar(255);uniqueIndex"`
	Value string `gorm:"type:text"`
}
