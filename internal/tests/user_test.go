package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/auth"
	"dispatch/internal/service"
)

func newUserFixture() (*service.UserService, *MockUserRepository, *auth.TokenManager) {
	userRepo := NewMockUserRepository()
	tokens := auth.NewTokenManager("test-secret", time.Minute)
	return service.NewUserService(userRepo, tokens), userRepo, tokens
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Register(context.Background(), service.RegisterUserRequest{
		Name:     "Budi",
		Phone:    "+628123456789",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}

	if user.ID == 0 {
		t.Error("expected user to receive an ID")
	}
	if user.PasswordHash == "hunter2" || user.PasswordHash == "" {
		t.Error("expected password to be stored hashed")
	}
}

func TestRegisterUser_DuplicatePhone(t *testing.T) {
	svc, _, _ := newUserFixture()

	req := service.RegisterUserRequest{Name: "Budi", Phone: "+628123456789", Password: "hunter2"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	req.Name = "Andi"
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, service.ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, _, tokens := newUserFixture()

	user, err := svc.Register(context.Background(), service.RegisterUserRequest{
		Name:     "Budi",
		Phone:    "+628123456789",
		Password: "hunter2",
		IsAdmin:  true,
	})
	if err != nil {
		t.Fatalf("registration: %v", err)
	}

	token, err := svc.Login(context.Background(), "+628123456789", "hunter2")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("verifying issued token: %v", err)
	}
	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("parsing subject: %v", err)
	}
	if userID != user.ID {
		t.Errorf("expected token for user %d, got %d", user.ID, userID)
	}
	if !claims.IsAdmin {
		t.Error("expected admin flag in token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newUserFixture()

	if _, err := svc.Register(context.Background(), service.RegisterUserRequest{
		Name: "Budi", Phone: "+628123456789", Password: "hunter2",
	}); err != nil {
		t.Fatalf("registration: %v", err)
	}

	_, err := svc.Login(context.Background(), "+628123456789", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownPhone(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.Login(context.Background(), "+620000000000", "whatever")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
