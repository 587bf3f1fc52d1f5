package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"leave-manager/internal/config"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(100) NOT NULL,
		name VARCHAR(100) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'employee',
		CONSTRAINT valid_role_check CHECK (role IN ('admin', 'employee'))
	)`,
	`CREATE TABLE IF NOT EXISTS leave_applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date_from DATE NOT NULL,
		date_to DATE NOT NULL,
		reason VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
		CONSTRAINT valid_status_check CHECK (status IN ('Approved', 'Pending', 'Rejected'))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_applications_user ON leave_applications (user_id)`,
}

// CHECK constraints are enforced from MySQL 8.0.16 on.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(100) NOT NULL,
		password VARCHAR(100) NOT NULL,
		name VARCHAR(100) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'employee',
		UNIQUE KEY uq_users_email (email),
		CONSTRAINT valid_role_check CHECK (role IN ('admin', 'employee'))
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS leave_applications (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		date_from DATE NOT NULL,
		date_to DATE NOT NULL,
		reason VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		user_id BIGINT NOT NULL,
		KEY idx_leave_applications_user (user_id),
		CONSTRAINT fk_leave_applications_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE RESTRICT,
		CONSTRAINT valid_status_check CHECK (status IN ('Approved', 'Pending', 'Rejected'))
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the users and leave_applications tables if they are missing.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var schema []string
	switch driver {
	case config.DriverSQLite:
		schema = sqliteSchema
	case config.DriverMySQL:
		schema = mysqlSchema
	default:
		return fmt.Errorf("no schema for driver %q", driver)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	log.Println("Database schema is up to date")
	return nil
}
