package utils

import (
	"fmt"
	"sync/atomic"

	"gemblog/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var memoryDBs atomic.Int64

// MemoryDSN returns a DSN for a fresh, private in-memory database.
func MemoryDSN() string {
	return fmt.Sprintf("file:gemblog%d?mode=memory&cache=shared", memoryDBs.Add(1))
}

func InitDatabase(dbPath string) (*gorm.DB, error) {
	if dbPath == "" {
		dbPath = "blog.db"
	}
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// the post collection lives in a single key/value row
	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		return nil, err
	}

	return db, nil
}
