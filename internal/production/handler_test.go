package production

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/Klue7/nova-erp-sub002/internal/auth"
	"github.com/Klue7/nova-erp-sub002/internal/batch"
	"github.com/Klue7/nova-erp-sub002/internal/models"
	"github.com/Klue7/nova-erp-sub002/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBatchApp wires GetBatchHandler behind a stub of the JWT middleware's
// locals so the handler's error mapping can be exercised end to end.
func newBatchApp(t *testing.T, userID, tenantID uint) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, userID)
		c.Locals(auth.CtxUserRoleKey, models.RoleOperator)
		tid := tenantID
		c.Locals(auth.CtxTenantIDKey, &tid)
		return c.Next()
	})
	app.Get("/api/batches/:id", GetBatchHandler())
	return app
}

func TestGetBatchStatusCodes(t *testing.T) {
	db := testutil.OpenTestDB(t)

	tenant := &models.Tenant{Name: "Boland Bricks"}
	require.NoError(t, db.Create(tenant).Error)
	user := &models.User{
		TenantID:     &tenant.ID,
		Name:         "Kiln Operator",
		Email:        "operator@boland.test",
		PasswordHash: "x",
		Role:         models.RoleOperator,
	}
	require.NoError(t, db.Create(user).Error)

	b, err := batch.Create(testutil.Actor(tenant.ID), models.StageKiln, "KILN-1", nil)
	require.NoError(t, err)

	app := newBatchApp(t, user.ID, tenant.ID)

	resp, err := app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/batches/%d", b.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// a batch this tenant cannot see is a 404
	resp, err = app.Test(httptest.NewRequest("GET", "/api/batches/999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/batches/zero", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// a store failure is not a missing row
	require.NoError(t, db.Migrator().DropTable(&models.Batch{}))
	resp, err = app.Test(httptest.NewRequest("GET", fmt.Sprintf("/api/batches/%d", b.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
