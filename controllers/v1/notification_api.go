package apiv1

import (
	"event-tracker-backend/controllers"
	notificationhandler "event-tracker-backend/lib/notification"
	"event-tracker-backend/middleware"
	apimodels "event-tracker-backend/models/api"
	notificationapimodels "event-tracker-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app *fiber.App) {
	controller := notificationApiController{}
	app.Route("notification", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Put("read_all", controller.readAll)
		router.Put(":id/read", controller.read)
	})
}

// @Summary Список уведомлений
// @Tags Уведомления
// @Description Уведомления сотрудника, флаг unread ограничивает выборку непрочитанными
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   unread      		query   bool	false   "только непрочитанные"
// @Param   page        		query   int		false   "страница"
// @Param   limit       		query   int		false   "записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification [get]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(ctx)
	filter := notificationapimodels.NotificationFilter{
		UnreadOnly: ctx.QueryBool("unread"),
	}
	filter.Page = ctx.QueryInt("page")
	filter.Limit = ctx.QueryInt("limit")
	result, rowCount, err := notificationhandler.Instance.List(employeeID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(result, rowCount))
}

// @Summary Прочитать уведомление
// @Tags Уведомления
// @Description Отметка о прочтении, в ответе ссылка для перехода
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/{id}/read [put]
func (c *notificationApiController) read(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	url, hMsg, err := notificationhandler.Instance.Read(employeeID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки уведомления прочитанным")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(url))
}

// @Summary Прочитать все уведомления
// @Tags Уведомления
// @Description Отметка о прочтении всех уведомлений сотрудника
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/read_all [put]
func (c *notificationApiController) readAll(ctx *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(ctx)
	err := notificationhandler.Instance.ReadAll(employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки уведомлений прочитанными")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
