package db

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDBTest(t *testing.T) func() {
	t.Helper()

	dsn := fmt.Sprintf("file:db-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	DB = gdb

	return func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	cleanup := setupDBTest(t)
	defer cleanup()

	if err := EnsureUser("admin", "contraseña"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}

	var user User
	if err := DB.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("expected user to exist: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("contraseña")); err != nil {
		t.Fatalf("expected stored password to be a bcrypt hash: %v", err)
	}

	// Running again must not touch the existing account.
	if err := EnsureUser("admin", "otra"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}

	var count int64
	DB.Model(&User{}).Where("username = ?", "admin").Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 account, got %d", count)
	}
	if err := DB.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("contraseña")); err != nil {
		t.Fatal("expected password to stay unchanged")
	}
}

func TestEnsureUserBlankIsNoOp(t *testing.T) {
	cleanup := setupDBTest(t)
	defer cleanup()

	if err := EnsureUser("", "algo"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	if err := EnsureUser("alguien", "  "); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}

	var count int64
	DB.Model(&User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no accounts, got %d", count)
	}
}
