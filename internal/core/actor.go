package core

import "github.com/Klue7/nova-erp-sub002/internal/models"

// Actor is the resolved identity every mutating operation runs as. It is
// built once per request by the auth package and passed explicitly, so the
// services stay testable without HTTP plumbing.
type Actor struct {
	UserID   uint
	Name     string
	Role     models.UserRole
	TenantID uint
}
