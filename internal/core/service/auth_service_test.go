package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/platebook/recipe-api/internal/core/domain"
	"github.com/platebook/recipe-api/internal/core/ports"
)

type stubAuthRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	// Mirrors the storage layer's unique index behaviour.
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("id-%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubAuthRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	found := cloneUser(u)
	found.PasswordHash = ""
	return found, nil
}

func newTestAuthService(repo ports.AuthRepository) (*AuthService, *TokenCodec) {
	codec := NewTokenCodec("secret", time.Hour)
	return NewAuthService(repo, codec, zerolog.Nop()), codec
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc, codec := newTestAuthService(repo)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// The registration token resolves to the just-created identity.
	subject, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("registration token invalid: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, subject)
	}
}

func TestAuthService_Register_AdminRole(t *testing.T) {
	repo := newStubAuthRepo()
	svc, _ := newTestAuthService(repo)

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "root",
		Email:    "root@example.com",
		Password: "pass123",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %q", user.Role)
	}
}

func TestAuthService_Register_UnknownRoleCoerced(t *testing.T) {
	repo := newStubAuthRepo()
	svc, _ := newTestAuthService(repo)

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "pass123",
		Role:     "superuser",
	})
	if err != nil {
		t.Fatalf("expected unknown role to be ignored, got error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %q, got %q", domain.RoleUser, user.Role)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc, _ := newTestAuthService(repo)

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol", Email: "carol@example.com", Password: "pass123",
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same email, different username.
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol2", Email: "carol@example.com", Password: "pass123",
	}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}

	// Same username, different email.
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol", Email: "carol2@example.com", Password: "pass123",
	}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc, codec := newTestAuthService(repo)

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave", Email: "dave@example.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "dave@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Username != "dave" {
		t.Fatalf("unexpected user: %+v", user)
	}

	subject, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("login token invalid: %v", err)
	}
	if subject != registered.ID {
		t.Fatalf("expected subject %s, got %s", registered.ID, subject)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubAuthRepo()
	svc, _ := newTestAuthService(repo)

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "erin", Email: "erin@example.com", Password: "goodpass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, _, badPass := svc.Login(context.Background(), "erin@example.com", "badpass")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if badPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", badPass)
	}
	if unknown != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknown)
	}
	if badPass.Error() != unknown.Error() {
		t.Fatalf("login failures differ: %q vs %q", badPass, unknown)
	}
}
