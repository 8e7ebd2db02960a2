package apiv1

import (
	"event-tracker-backend/controllers"
	delegationhandler "event-tracker-backend/lib/delegation"
	employeehandler "event-tracker-backend/lib/employee"
	"event-tracker-backend/middleware"
	apimodels "event-tracker-backend/models/api"
	employeeapimodels "event-tracker-backend/models/api/employee"

	"github.com/gofiber/fiber/v2"
)

type employeeApiController struct {
	controllers.BaseAPIController
}

func InitEmployeeApiRouters(app *fiber.App) {
	controller := employeeApiController{}
	app.Route("employee", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Route("my_delegation", func(delegationRoute fiber.Router) {
			delegationRoute.Get("", controller.myDelegation)
			delegationRoute.Post("", controller.setDelegation)
			delegationRoute.Delete("", controller.cancelDelegation)
		})
		router.Get(":id", controller.get)
	})
}

// @Summary Список сотрудников
// @Tags Сотрудники
// @Description Список сотрудников
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee [get]
func (c *employeeApiController) list(ctx *fiber.Ctx) error {
	result, err := employeehandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Карточка сотрудника
// @Tags Сотрудники
// @Description Карточка сотрудника
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/{id} [get]
func (c *employeeApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, hMsg, err := employeehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения карточки сотрудника")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Моё замещение
// @Tags Сотрудники
// @Description Сведения о замещении и возможных замещающих
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/my_delegation [get]
func (c *employeeApiController) myDelegation(ctx *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(ctx)
	result, hMsg, err := delegationhandler.Instance.My(employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сведений о замещении")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Назначить замещение
// @Tags Сотрудники
// @Description Передача полномочий замещающему до указанной даты
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	employeeapimodels.DelegationData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/my_delegation [post]
func (c *employeeApiController) setDelegation(ctx *fiber.Ctx) error {
	var payload employeeapimodels.DelegationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := delegationhandler.Instance.Set(employeeID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка назначения замещения")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отменить замещение
// @Tags Сотрудники
// @Description Досрочная отмена замещения
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/my_delegation [delete]
func (c *employeeApiController) cancelDelegation(ctx *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := delegationhandler.Instance.Cancel(employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены замещения")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
