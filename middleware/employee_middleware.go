package middleware

import (
	authutils "event-tracker-backend/lib/utils/auth-utils"
	"event-tracker-backend/models"
	apimodels "event-tracker-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetEmployeeID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetEmployeeRole(ctx *fiber.Ctx) models.EmployeeRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.EmployeeRole(stringRole)
		}
	}
	return ""
}

func RoleRequired(action models.EmployeeAction) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetEmployeeRole(ctx).Can(action) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
