package service

import (
	"errors"
	"testing"

	"github.com/ezguapp/medalert/internal/db"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAccountService(db.DB)

	user, err := svc.Register("marta", "marta@example.com", "secreto123", "secreto123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user to have ID")
	}
	if user.Password == "secreto123" {
		t.Fatal("expected password to be hashed")
	}

	var profile db.UserProfile
	if err := db.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("expected profile row to exist: %v", err)
	}
	if profile.HydrationReady() {
		t.Fatal("fresh profile should not be hydration ready")
	}
}

func TestRegisterValidation(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAccountService(db.DB)

	if _, err := svc.Register("", "", "pw", "pw"); !errors.Is(err, ErrAccountInvalidInput) {
		t.Fatalf("expected ErrAccountInvalidInput, got %v", err)
	}
	if _, err := svc.Register("marta", "", "pw1", "pw2"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	if _, err := svc.Register("marta", "", "secreto123", "secreto123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register("marta", "", "otra", "otra"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAccountService(db.DB)
	if _, err := svc.Register("teo", "", "secreto123", "secreto123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.Authenticate("teo", "secreto123"); err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if _, err := svc.Authenticate("teo", "equivocada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nadie", "secreto123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
