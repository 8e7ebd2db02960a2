package apiv1

import (
	planapprovalhandler "event-tracker-backend/lib/plan-approval"
	taskhandler "event-tracker-backend/lib/task"
	taskreviewhandler "event-tracker-backend/lib/task-review"
	"event-tracker-backend/middleware"
	apimodels "event-tracker-backend/models/api"
	cardapimodels "event-tracker-backend/models/api/card"
	taskapimodels "event-tracker-backend/models/api/task"

	"event-tracker-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

type taskApiController struct {
	controllers.BaseAPIController
}

func InitTaskApiRouters(app *fiber.App) {
	controller := taskApiController{}
	app.Route("task", func(router fiber.Router) {
		router.Get("board", controller.board)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("take", controller.take)
			idRoute.Post("execute", controller.execute)
			idRoute.Post("redirect", controller.redirect)
			idRoute.Put("complete", controller.complete)
			idRoute.Put("approve_plan", controller.approvePlan)
			idRoute.Post("reject_plan", controller.rejectPlan)
			idRoute.Route("review", func(reviewRoute fiber.Router) {
				reviewRoute.Get("", controller.reviewGet)
				reviewRoute.Put("take", controller.reviewTake)
				reviewRoute.Post("approve", controller.reviewApprove)
				reviewRoute.Post("reject", controller.reviewReject)
			})
		})
	})
}

// @Summary Доска задач
// @Tags Задачи
// @Description Блоки задач сотрудника: срочные, согласования, проверки, отклонённые
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/board [get]
func (c *taskApiController) board(ctx *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(ctx)
	result, err := taskhandler.Instance.Board(employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения доски задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Карточка задачи
// @Tags Задачи
// @Description Задача с историей и вложениями
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id} [get]
func (c *taskApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	result, hMsg, err := taskhandler.Instance.GetByID(employeeID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения задачи")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Взять задачу в работу
// @Tags Задачи
// @Description Перевод задачи в работу исполнителем
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/take [put]
func (c *taskApiController) take(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := taskhandler.Instance.Take(employeeID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка взятия задачи в работу")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отчитаться о выполнении
// @Tags Задачи
// @Description Отправка отчёта о выполнении, задача уходит на проверку постановщику
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	taskapimodels.ExecuteData		true	"request body"
// @Param   id          		path    string							true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/execute [post]
func (c *taskApiController) execute(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.ExecuteData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := taskhandler.Instance.Execute(employeeID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки отчёта о выполнении")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Перенаправить задачу
// @Tags Задачи
// @Description Перенаправление задачи другому сотруднику
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	taskapimodels.RedirectData		true	"request body"
// @Param   id          		path    string							true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/redirect [post]
func (c *taskApiController) redirect(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.RedirectData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := taskhandler.Instance.Redirect(employeeID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка перенаправления задачи")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Закрыть задачу
// @Tags Задачи
// @Description Закрытие задачи постановщиком без проверки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/complete [put]
func (c *taskApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := taskhandler.Instance.Complete(employeeID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка закрытия задачи")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать план
// @Tags Согласование плана
// @Description Одобрение плана текущим согласующим, очередь переходит дальше
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "task rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/approve_plan [put]
func (c *taskApiController) approvePlan(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := planapprovalhandler.Instance.Approve(employeeID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования плана")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить план
// @Tags Согласование плана
// @Description Отклонение плана с указанием причины, карточка скрывается до доработки
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	cardapimodels.PlanRejectData		true	"request body"
// @Param   id          		path    string								true    "task rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/reject_plan [post]
func (c *taskApiController) rejectPlan(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload cardapimodels.PlanRejectData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := planapprovalhandler.Instance.Reject(employeeID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения плана")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Карточка проверки
// @Tags Проверка выполнения
// @Description Проверочная задача с отчётом исполнителя и материалами последней отправки
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "review task rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/review [get]
func (c *taskApiController) reviewGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	result, hMsg, err := taskreviewhandler.Instance.Get(employeeID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения проверочной задачи")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Взять проверку в работу
// @Tags Проверка выполнения
// @Description Перевод проверки в рассмотрение
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "review task rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/review/take [put]
func (c *taskApiController) reviewTake(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := taskreviewhandler.Instance.Take(employeeID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка взятия проверки в работу")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Принять работу
// @Tags Проверка выполнения
// @Description Принятие работы, исходная задача закрывается
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	taskapimodels.ReviewDecisionData	true	"request body"
// @Param   id          		path    string								true    "review task rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/review/approve [post]
func (c *taskApiController) reviewApprove(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.ReviewDecisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := taskreviewhandler.Instance.Approve(employeeID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка принятия работы")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Вернуть на доработку
// @Tags Проверка выполнения
// @Description Возврат работы на доработку с указанием причины
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	taskapimodels.ReviewDecisionData	true	"request body"
// @Param   id          		path    string								true    "review task rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/task/{id}/review/reject [post]
func (c *taskApiController) reviewReject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.ReviewDecisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employeeID := middleware.GetEmployeeID(ctx)
	hMsg, err := taskreviewhandler.Instance.Reject(employeeID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка возврата работы на доработку")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
