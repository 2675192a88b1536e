package gormdb

import (
	"dog-breeds-api/internal/platform/logger"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenSQLite abre la base SQLite vía gorm. dsn puede ser un path o "file::memory:?cache=shared".
// Los logs de gorm salen por log, filtrados según level.
func OpenSQLite(dsn string, log logger.Logger, level logger.Level) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newGormLog(log, level),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB, err := db.DB()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// SQLite serializa escrituras; una sola conexión evita "database is locked"
	// y mantiene viva la base en memoria.
	internalDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		_ = internalDB.Close()
		return nil, errors.WithStack(err)
	}

	return db, nil
}

// Migrate crea/actualiza dogs, temperaments y la tabla de unión dog_temperaments.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Dog{}, &Temperament{}); err != nil {
		return errors.Wrap(err, "migrate sqlite schema")
	}
	return nil
}
