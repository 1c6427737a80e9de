package user_test

import (
	"context"
	"testing"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/memstore"
	"github.com/MikeMC777/restaurant-pos/internal/user"
)

func TestRegister_RoleFromAdminEmail(t *testing.T) {
	svc := user.NewService(memstore.New().Users(), "boss@example.com", nil)
	ctx := context.Background()

	admin, err := svc.Register(ctx, user.RegisterRequest{Email: " Boss@Example.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if admin.Role != user.RoleAdmin || admin.Email != "boss@example.com" {
		t.Fatalf("admin=%+v", admin)
	}
	staff, err := svc.Register(ctx, user.RegisterRequest{Email: "cook@example.com", Password: "secret1"})
	if err != nil || staff.Role != user.RoleStaff {
		t.Fatalf("staff=%+v err=%v", staff, err)
	}
	if _, err := svc.Register(ctx, user.RegisterRequest{Email: "cook@example.com", Password: "secret1"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("duplicate: err=%v", err)
	}
	if _, err := svc.Register(ctx, user.RegisterRequest{Email: "x@example.com", Password: "123"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("short password: err=%v", err)
	}
}

func TestAuthenticate_AndProfileUpdate(t *testing.T) {
	svc := user.NewService(memstore.New().Users(), "", nil)
	ctx := context.Background()
	u, _ := svc.Register(ctx, user.RegisterRequest{Email: "ana@example.com", Password: "secret1", DisplayName: "Ana"})

	if _, err := svc.Authenticate(ctx, "ana@example.com", "wrong!!"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("wrong password: err=%v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "secret1"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("unknown email: err=%v", err)
	}
	if got, err := svc.Authenticate(ctx, "ANA@example.com", "secret1"); err != nil || got.ID != u.ID {
		t.Fatalf("login: %+v err=%v", got, err)
	}

	// empty fields are kept
	got, err := svc.UpdateProfile(ctx, u.ID, user.UpdateProfileRequest{PhotoURL: "https://img/ana.png", Password: "secret2"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.DisplayName != "Ana" || got.PhotoURL != "https://img/ana.png" {
		t.Fatalf("profile=%+v", got)
	}
	if _, err := svc.Authenticate(ctx, "ana@example.com", "secret2"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, u.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("get after delete: err=%v", err)
	}
}
