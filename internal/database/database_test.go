package database

import (
	"path/filepath"
	"testing"

	"expensehub/internal/config"
	"expensehub/internal/logger"
)

func init() {
	logger.Init("test")
}

func TestNewConfig(t *testing.T) {
	t.Run("rejects_unknown_driver", func(t *testing.T) {
		_, err := NewConfig(&config.Config{DBDriver: "mysql"})
		if err == nil {
			t.Fatal("expected error for unsupported driver")
		}
	})

	t.Run("builds_postgres_urls", func(t *testing.T) {
		cfg, err := NewConfig(&config.Config{
			DBDriver: "postgres", DBHost: "db", DBPort: "5432",
			DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cfg.DSN(); got != "host=db port=5432 user=u password=p dbname=n sslmode=disable TimeZone=UTC" {
			t.Errorf("unexpected DSN %q", got)
		}
		if got := cfg.MigrateURL(); got != "postgres://u:p@db:5432/n?sslmode=disable" {
			t.Errorf("unexpected migrate URL %q", got)
		}
	})
}

func TestManager_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	mgr, err := NewManager(&Config{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			t.Errorf("close failed: %v", err)
		}
	}()

	if err := mgr.RunMigrations(); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}

	var count int64
	for _, table := range []string{"users", "tenants", "tenant_memberships", "categories", "expense_groups", "expenses", "audit_logs"} {
		if err := mgr.DB().Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}
