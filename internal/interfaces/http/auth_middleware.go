package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/conversahub/billing-api/internal/application/dto"
	"github.com/conversahub/billing-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalProfile   = "profile"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, CompanyID y
// Profile a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, companyID, profile, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCompanyID, companyID)
		c.Locals(LocalProfile, profile)
		return c.Next()
	}
}

// RequireProfile autoriza solo a los perfiles indicados. Debe ir después de
// AuthMiddleware.
func RequireProfile(profiles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := GetProfile(c)
		if profile == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_PROFILE", Message: "token sin perfil"})
		}
		for _, allowed := range profiles {
			if profile == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "perfil sin acceso a este recurso"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetProfile devuelve el Profile del contexto (después del middleware de auth).
func GetProfile(c *fiber.Ctx) string {
	v := c.Locals(LocalProfile)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
