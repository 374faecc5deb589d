package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/repairshop/technotes-api/internal/core/domain"
)

func newAuthService(repo *memUserRepo) *AuthService {
	return NewAuthService(repo, NewTokenService("secret", time.Hour), zerolog.Nop())
}

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Signup(context.Background(), "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleEmployee {
		t.Fatalf("expected default employee role, got %v", user.Roles)
	}
	if !user.Active {
		t.Fatalf("expected new user to be active")
	}
}

func TestAuthService_Signup_MissingFields(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	if _, err := svc.Signup(context.Background(), "alice", "", "pass123"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "pass123"); err != nil {
		t.Fatalf("first Signup returned error: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "alice2", "alice@example.com", "other"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Signup(context.Background(), "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, user.ID)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newMemUserRepo())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrEmailNotFound) {
		t.Fatalf("expected ErrEmailNotFound, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "pass123"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthService_VerifyToken(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "pass123"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	ok, err := svc.VerifyToken(context.Background(), token)
	if err != nil || !ok {
		t.Fatalf("expected (true, nil), got (%v, %v)", ok, err)
	}

	ok, err = svc.VerifyToken(context.Background(), "")
	if err != nil || ok {
		t.Fatalf("expected (false, nil) for empty token, got (%v, %v)", ok, err)
	}

	ok, err = svc.VerifyToken(context.Background(), "garbage")
	if err != nil || ok {
		t.Fatalf("expected (false, nil) for garbage token, got (%v, %v)", ok, err)
	}
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	repo := newMemUserRepo()
	tokens := NewTokenService("secret", time.Hour)
	tokens.ttl = -time.Minute
	svc := NewAuthService(repo, tokens, zerolog.Nop())

	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	ok, err := svc.VerifyToken(context.Background(), token)
	if ok || !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected (false, ErrTokenExpired), got (%v, %v)", ok, err)
	}
}

func TestAuthService_VerifyToken_UserDeleted(t *testing.T) {
	repo := newMemUserRepo()
	svc := newAuthService(repo)

	created, err := svc.Signup(context.Background(), "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if _, err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	ok, err := svc.VerifyToken(context.Background(), token)
	if ok || err != nil {
		t.Fatalf("expected (false, nil) for deleted user, got (%v, %v)", ok, err)
	}
}
