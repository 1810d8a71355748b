package domain

import "time"

// Audit actions recorded for recipe mutations.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditEntry records a single mutation of a recipe by an identity.
type AuditEntry struct {
	RecipeID  string
	Action    string
	ActorID   string
	ActorRole string
	Timestamp time.Time
}
