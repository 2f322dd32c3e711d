// Package database provides the SQLite persistence layer for miotlang.
//
// It wraps database/sql with lifecycle management (directory creation, WAL
// mode, busy timeout, restrictive file permissions), a health check, and an
// embedded SQL migration runner.
//
// # Usage
//
//	db, err := database.Open(database.Config{
//	    Path:        cfg.Database.Path,
//	    WALMode:     cfg.Database.WALMode,
//	    BusyTimeout: cfg.Database.BusyTimeout,
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migration files are embedded by the top-level migrations package, which
// registers its embed.FS here via init().
//
// # Thread Safety
//
// The DB wrapper is safe for concurrent use; the pool is capped at a single
// connection to match SQLite's single-writer model.
package database
