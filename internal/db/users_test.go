package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"seodash/internal/models"
)

func TestUpsertUser_CreateAndUpdate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := &models.User{Sub: "sub-123", Email: "a@example.com", Name: "A"}
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("UpsertUser() did not set ID")
	}
	if user.Role != models.RoleViewer {
		t.Errorf("UpsertUser() role = %q, want %q", user.Role, models.RoleViewer)
	}
	originalID := user.ID

	if err := db.UpdateUserRole(ctx, user.ID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole() error = %v", err)
	}

	again := &models.User{Sub: "sub-123", Email: "b@example.com", Name: "B", Role: models.RoleViewer}
	if err := db.UpsertUser(ctx, again); err != nil {
		t.Fatalf("UpsertUser() update error = %v", err)
	}
	if again.ID != originalID {
		t.Errorf("UpsertUser() ID = %v, want %v", again.ID, originalID)
	}
	if again.Role != models.RoleAdmin {
		t.Errorf("login changed role to %q", again.Role)
	}

	got, err := db.GetUserBySub(ctx, "sub-123")
	if err != nil {
		t.Fatalf("GetUserBySub() error = %v", err)
	}
	if got.Email != "b@example.com" {
		t.Errorf("GetUserBySub() email = %q, want b@example.com", got.Email)
	}

	emails, err := db.GetAdminEmails(ctx)
	if err != nil {
		t.Fatalf("GetAdminEmails() error = %v", err)
	}
	if len(emails) != 1 || emails[0] != "b@example.com" {
		t.Errorf("GetAdminEmails() = %v", emails)
	}
}

func TestGetUserBySub_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.GetUserBySub(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserBySub() error = %v, want ErrUserNotFound", err)
	}
	if err := db.UpdateUserRole(context.Background(), uuid.New(), models.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateUserRole() error = %v, want ErrUserNotFound", err)
	}
}
