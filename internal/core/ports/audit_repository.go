package ports

import (
	"context"

	"github.com/platebook/recipe-api/internal/core/domain"
)

// AuditRepository persists recipe mutation entries to the audit collection.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
