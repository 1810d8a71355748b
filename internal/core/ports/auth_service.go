package ports

import (
	"context"

	"github.com/platebook/recipe-api/internal/core/domain"
)

// RegisterInput carries the candidate identity submitted at registration.
// Role is optional; unknown values are ignored and default to "user".
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration and login. Both return a signed token
// alongside the stored identity.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
