package ports

import (
	"context"

	"github.com/platebook/recipe-api/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
//
// FindByID omits the stored password hash; it feeds the auth gate, which
// never needs credentials. FindByEmailOrUsername returns the full record
// including the hash so login can compare passwords.
type AuthRepository interface {
	FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
