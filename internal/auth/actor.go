package auth

import (
	"fmt"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ResolveActor turns the JWT locals into the explicit actor value the
// services take. Tenant users act under their own tenant; a super admin must
// name the tenant via the ?tenant_id query (they have no tenant of their own).
func ResolveActor(c *fiber.Ctx) (core.Actor, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return core.Actor{}, core.ErrUnauthenticated
	}
	role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
	if !ok {
		return core.Actor{}, core.ErrUnauthenticated
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return core.Actor{}, core.ErrUnauthenticated
	}

	tenantID, err := resolveTenantID(c, role)
	if err != nil {
		return core.Actor{}, err
	}

	return core.Actor{
		UserID:   user.ID,
		Name:     user.Name,
		Role:     role,
		TenantID: tenantID,
	}, nil
}

func resolveTenantID(c *fiber.Ctx, role models.UserRole) (uint, error) {
	if role == models.RoleSuperAdmin {
		tidStr := c.Query("tenant_id")
		var tid uint
		if tidStr == "" {
			return 0, core.ErrProfileRequired
		}
		if _, err := fmt.Sscan(tidStr, &tid); err != nil || tid == 0 {
			return 0, &core.ValidationError{Field: "tenant_id", Message: "must be a positive id"}
		}
		return tid, nil
	}

	tPtr, ok := c.Locals(CtxTenantIDKey).(*uint)
	if !ok || tPtr == nil {
		return 0, core.ErrProfileRequired
	}
	return *tPtr, nil
}
