package apiv1

import (
	"event-tracker-backend/controllers"
	eventcardhandler "event-tracker-backend/lib/event-card"
	taskhandler "event-tracker-backend/lib/task"
	"event-tracker-backend/middleware"
	apimodels "event-tracker-backend/models/api"
	cardapimodels "event-tracker-backend/models/api/card"
	taskapimodels "event-tracker-backend/models/api/task"

	"github.com/gofiber/fiber/v2"
)

type cardApiController struct {
	controllers.BaseAPIController
}

func InitCardApiRouters(app *fiber.App) {
	controller := cardApiController{}
	app.Route("card", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Get("export", controller.export)
			idRoute.Post("resubmit_plan", controller.resubmitPlan)
			idRoute.Post("task", controller.createTask)
		})
	})
}

// @Summary Список карточек мероприятий
// @Tags Карточки мероприятий
// @Description Список карточек с прогрессом выполнения
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/card [get]
func (c *cardApiController) list(ctx *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(ctx)
	result, err := eventcardhandler.Instance.List(employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка карточек")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Создание карточки мероприятия
// @Tags Карточки мероприятий
// @Description Создание карточки, при наличии плана запускается цепочка согласования
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	cardapimodels.CardData			true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/card [post]
func (c *cardApiController) create(ctx *fiber.Ctx) error {
	var payload cardapimodels.CardData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	id, hMsg, err := eventcardhandler.Instance.Create(employeeID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания карточки мероприятия")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Карточка мероприятия
// @Tags Карточки мероприятий
// @Description Карточка с задачами, фильтры owner (mine/department/all) и filter по статусу
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Param   owner       		query   string	false   "mine/department/all"
// @Param   filter      		query   string	false   "all/new/in_progress/review/done"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/card/{id} [get]
func (c *cardApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	filter := cardapimodels.CardTasksFilter{
		Owner:  ctx.Query("owner"),
		Filter: ctx.Query("filter"),
	}
	employeeID := middleware.GetEmployeeID(ctx)
	card, tasks, hMsg, err := eventcardhandler.Instance.GetByID(employeeID, id, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения карточки мероприятия")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(struct {
		Card  cardapimodels.CardView   `json:"card"`
		Tasks []taskapimodels.TaskView `json:"tasks"`
	}{Card: card, Tasks: tasks}))
}

// @Summary Удаление карточки мероприятия
// @Tags Карточки мероприятий
// @Description Удаление карточки вместе с задачами
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/card/{id} [delete]
func (c *cardApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := eventcardhandler.Instance.Delete(employeeID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления карточки мероприятия")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузка отчёта по карточке
// @Tags Карточки мероприятий
// @Description Выгрузка задач карточки в xlsx
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/card/{id}/export [get]
func (c *cardApiController) export(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	buf, fileName, hMsg, err := eventcardhandler.Instance.Export(employeeID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчёта по карточке")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).SendStream(buf)
}

// @Summary Повторная отправка плана
// @Tags Карточки мероприятий
// @Description Повторная отправка отклонённого плана, цепочка согласования начинается заново
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	cardapimodels.PlanResubmitData		true	"request body"
// @Param   id          		path    string								true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/card/{id}/resubmit_plan [post]
func (c *cardApiController) resubmitPlan(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload cardapimodels.PlanResubmitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := eventcardhandler.Instance.ResubmitPlan(employeeID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка повторной отправки плана")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Создание задач по карточке
// @Tags Карточки мероприятий
// @Description Создание задач, по каждому получателю создаётся отдельная копия
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	taskapimodels.TaskData			true	"request body"
// @Param   id          		path    string							true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/card/{id}/task [post]
func (c *cardApiController) createTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.TaskData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	ids, hMsg, err := taskhandler.Instance.CreateForCard(employeeID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания задач по карточке")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(ids))
}
