package middleware

import (
	"strings"

	delegationhandler "event-tracker-backend/lib/delegation"
	apimodels "event-tracker-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// пока полномочия переданы замещающему, сотруднику доступно
// только управление собственным замещением и чтение уведомлений
var frozenAllowedPrefixes = []string{
	"/api/v1/employee/my_delegation",
	"/api/v1/notification",
}

// DelegationFreeze блокирует действия сотрудника с активным замещением
func DelegationFreeze() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		employeeID := GetEmployeeID(ctx)
		if employeeID == "" {
			return ctx.Next()
		}
		_, frozen, err := delegationhandler.Instance.IsFrozen(employeeID)
		if err != nil {
			log.
				WithField("employee_id", employeeID).
				WithError(err).
				Error("Ошибка проверки замещения")
			return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("Ошибка проверки замещения"))
		}
		if !frozen {
			return ctx.Next()
		}
		for _, prefix := range frozenAllowedPrefixes {
			if strings.HasPrefix(ctx.Path(), prefix) {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("Ваши полномочия переданы замещающему, действия недоступны до окончания замещения"))
	}
}
