// Package database handles database connections and schema migration.
//
// It provides a wrapper around GORM to configure MySQL, PostgreSQL or SQLite
// connections based on the application's configuration. Connections are opened
// with TranslateError enabled so that unique constraint violations surface as
// gorm.ErrDuplicatedKey regardless of the driver.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	err = database.Migrate(db, &models.Match{}, &models.Participation{})
package database
