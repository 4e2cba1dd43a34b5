package admin

import (
	"strings"

	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type TenantResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

type CreateTenantRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"` // optional
}

type UpdateTenantRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type CreateTenantUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // tenant_admin or operator, defaults to tenant_admin
}

type TenantUserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TenantID  *uint  `json:"tenant_id"`
	CreatedAt string `json:"created_at"`
}

// ----------------------------------------
// TENANT CRUD (super admin only)
// ----------------------------------------

func CreateTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTenantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tenant name cannot be empty")
		}

		tenant := models.Tenant{
			Name:    body.Name,
			Address: body.Address,
		}
		if body.Phone != nil {
			tenant.Phone = strings.TrimSpace(*body.Phone)
		}

		if err := database.DB.Create(&tenant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "tenant could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(TenantResponse{
			ID:        tenant.ID,
			Name:      tenant.Name,
			Address:   tenant.Address,
			Phone:     tenant.Phone,
			CreatedAt: tenant.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func ListTenantsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tenants []models.Tenant
		if err := database.DB.Find(&tenants).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "tenants could not be listed")
		}

		res := make([]TenantResponse, 0, len(tenants))
		for _, t := range tenants {
			res = append(res, TenantResponse{
				ID:        t.ID,
				Name:      t.Name,
				Address:   t.Address,
				Phone:     t.Phone,
				CreatedAt: t.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func GetTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tenant models.Tenant
		if err := database.DB.First(&tenant, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "tenant not found")
		}

		return c.JSON(TenantResponse{
			ID:        tenant.ID,
			Name:      tenant.Name,
			Address:   tenant.Address,
			Phone:     tenant.Phone,
			CreatedAt: tenant.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func UpdateTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tenant models.Tenant
		if err := database.DB.First(&tenant, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "tenant not found")
		}

		var body UpdateTenantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "tenant name cannot be empty")
			}
			tenant.Name = name
		}

		if body.Address != nil {
			tenant.Address = *body.Address
		}

		if body.Phone != nil {
			tenant.Phone = strings.TrimSpace(*body.Phone)
		}

		if err := database.DB.Save(&tenant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "tenant could not be updated")
		}

		return c.JSON(TenantResponse{
			ID:        tenant.ID,
			Name:      tenant.Name,
			Address:   tenant.Address,
			Phone:     tenant.Phone,
			CreatedAt: tenant.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// ----------------------------------------
// TENANT USERS
// ----------------------------------------

func CreateTenantUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := c.Params("id")

		var tenant models.Tenant
		if err := database.DB.First(&tenant, "id = ?", tenantID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "tenant not found")
		}

		var body CreateTenantUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name, email and password are required")
		}

		role := models.RoleTenantAdmin
		switch body.Role {
		case "", string(models.RoleTenantAdmin):
		case string(models.RoleOperator):
			role = models.RoleOperator
		default:
			return fiber.NewError(fiber.StatusBadRequest, "role must be tenant_admin or operator")
		}

		var exist models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "this email is already registered")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
			TenantID:     &tenant.ID,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "tenant user could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"tenant_id": user.TenantID,
		})
	}
}

// GET /api/admin/tenants/:id/users
func ListTenantUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := c.Params("id")

		var users []models.User
		if err := database.DB.
			Where("tenant_id = ?", tenantID).
			Order("created_at DESC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "users could not be listed")
		}

		res := make([]TenantUserResponse, 0, len(users))
		for _, u := range users {
			res = append(res, TenantUserResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Role:      string(u.Role),
				TenantID:  u.TenantID,
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
