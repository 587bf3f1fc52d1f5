package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"leave-manager/internal/config"
)

func TestNewConnectionCreatesSchema(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		DSN:             "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}

	db, err := NewConnection(ctx, cfg)
	if err != nil {
		t.Fatalf("NewConnection: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"users", "leave_applications"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	// running twice must be harmless
	if err := Migrate(ctx, db, cfg.Driver); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestMigrateUnknownDriver(t *testing.T) {
	if err := Migrate(context.Background(), nil, "postgres"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
