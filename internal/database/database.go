package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"leave-manager/internal/config"
)

// NewConnection opens the configured database, checks it is reachable and
// brings the schema up to date.
func NewConnection(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	log.Printf("Connecting to %s database...", cfg.Driver)

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := Migrate(ctx, db, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("Database connection ready")
	return db, nil
}
