package mock

import (
	"fmt"
	"log"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db wraps an in-memory sqlite database shared across scenarios.
type Db struct {
	Conn   *gorm.DB
	models []any
}

var (
	dbInstance *Db
	dbOnce     sync.Once
)

// NewDb opens a shared in-memory sqlite database and migrates the given
// models. The same instance is reused for the whole suite; call Reset
// between scenarios to clear state.
func NewDb(models ...any) *Db {
	dbOnce.Do(func() {
		conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to open sqlite: %v", err)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			log.Fatalf("failed to get sql.DB: %v", err)
		}
		sqlDB.SetMaxOpenConns(1)

		if err := conn.AutoMigrate(models...); err != nil {
			log.Fatalf("failed to migrate models: %v", err)
		}

		dbInstance = &Db{Conn: conn, models: models}
	})
	return dbInstance
}

// Reset deletes all rows from every migrated table.
func (d *Db) Reset() error {
	for _, m := range d.models {
		if err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("failed to reset table for %T: %w", m, err)
		}
	}
	return nil
}
