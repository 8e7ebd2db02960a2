package planapprovalhandler

import (
	"fmt"
	"time"

	"event-tracker-backend/db"
	delegationhandler "event-tracker-backend/lib/delegation"
	employeestore "event-tracker-backend/lib/employee/store"
	cardapproverstore "event-tracker-backend/lib/event-card/approver-store"
	eventcardstore "event-tracker-backend/lib/event-card/store"
	notificationhandler "event-tracker-backend/lib/notification"
	taskhistoryhandler "event-tracker-backend/lib/task-history"
	taskstore "event-tracker-backend/lib/task/store"
	"event-tracker-backend/models"
	cardapimodels "event-tracker-backend/models/api/card"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Approve(employeeID, taskID string) (hMsg string, err error)
	Reject(employeeID, taskID string, data cardapimodels.PlanRejectData) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		cardStore:     eventcardstore.NewInstance(db.DB),
		approverStore: cardapproverstore.NewInstance(db.DB),
		taskStore:     taskstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		history:       taskhistoryhandler.NewHandlerWithTx(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		cardStore:     eventcardstore.NewInstance(tx),
		approverStore: cardapproverstore.NewInstance(tx),
		taskStore:     taskstore.NewInstance(tx),
		employeeStore: employeestore.NewInstance(tx),
		history:       taskhistoryhandler.NewHandlerWithTx(tx),
	}
}

type impl struct {
	cardStore     eventcardstore.Provider
	approverStore cardapproverstore.Provider
	taskStore     taskstore.Provider
	employeeStore employeestore.Provider
	history       taskhistoryhandler.Provider
}

func (i impl) getLogger(employeeID, cardID string) *log.Entry {
	return log.
		WithField("employee_id", employeeID).
		WithField("card_id", cardID)
}

// chainAdvance описывает следующий шаг цепочки после одобрения текущим согласующим
type chainAdvance struct {
	// очередной согласующий из очереди, nil если очередь исчерпана
	NextApprover *dbmodels.CardApproverOrder
	// передать план утверждающему
	RouteToFinal bool
	// план согласован полностью
	Approved bool
	// новое значение указателя цепочки
	NextIndex int
}

// advanceChain вычисляет следующий шаг: берётся согласующий со строго большим
// номером очереди, при исчерпании очереди указатель встаёт в терминальную позицию
func advanceChain(orders []dbmodels.CardApproverOrder, currentOrder int, hasFinal, actorIsFinal bool) chainAdvance {
	terminal := len(orders)
	if actorIsFinal {
		return chainAdvance{Approved: true, NextIndex: terminal}
	}
	for idx := range orders {
		if orders[idx].OrderNum > currentOrder {
			return chainAdvance{NextApprover: &orders[idx], NextIndex: orders[idx].OrderNum}
		}
	}
	if hasFinal {
		return chainAdvance{RouteToFinal: true, NextIndex: terminal}
	}
	return chainAdvance{Approved: true, NextIndex: terminal}
}

// allowedActors перечисляет, кто вправе решать судьбу плана в текущей позиции:
// согласующий на текущем шаге очереди и утверждающий на любом этапе
func allowedActors(card dbmodels.EventCard, queueOrder *dbmodels.CardApproverOrder) (queueID, finalID string) {
	if queueOrder != nil {
		queueID = queueOrder.EmployeeID
	}
	if card.FinalApproverID != nil {
		finalID = *card.FinalApproverID
	}
	return queueID, finalID
}

func (i impl) Approve(employeeID, taskID string) (string, error) {
	task, card, hMsg, err := i.loadApprovalTask(taskID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	actorID, isFinal, hMsg, err := i.checkActor(employeeID, *card)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	orders, err := i.approverStore.ListByCard(card.ID)
	if err != nil {
		return "", err
	}
	step := advanceChain(orders, card.CurrentApproverIndex, card.FinalApproverID != nil, isFinal)
	now := time.Now()

	var nextTaskID, nextAssigneeID string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		err := txHandler.taskStore.Update(task.ID, map[string]interface{}{
			"status":       models.TaskStatusDone,
			"completed_at": now,
		})
		if err != nil {
			return err
		}
		txHandler.history.Audit(task.ID, actorID, models.HistoryApproved, "")

		cardUpd := map[string]interface{}{}
		if step.Approved {
			cardUpd["plan_status"] = models.PlanStatusApproved
			cardUpd["plan_approved_at"] = now
			cardUpd["is_fully_approved"] = true
			cardUpd["visible"] = true
		}
		moved, err := txHandler.cardStore.UpdateApproverIndexCAS(card.ID, card.CurrentApproverIndex, step.NextIndex, cardUpd)
		if err != nil {
			return err
		}
		if !moved {
			return errChainMoved
		}
		if step.NextApprover != nil {
			nextTaskID, nextAssigneeID, err = txHandler.createApprovalTask(card, step.NextApprover.EmployeeID, employeeID, models.PriorityNormal)
			return err
		}
		if step.RouteToFinal {
			nextTaskID, nextAssigneeID, err = txHandler.routeToFinal(card, employeeID)
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errChainMoved) {
			return "Решение по этому этапу уже принято другим согласующим", nil
		}
		return "", err
	}
	if nextTaskID != "" {
		notificationhandler.Instance.Notify(nextAssigneeID,
			fmt.Sprintf("Вам на согласование поступил план мероприятия «%s»", card.Title),
			fmt.Sprintf("/tasks/%s", nextTaskID))
	}
	if step.Approved {
		notificationhandler.Instance.Notify(card.GetCreatedByID(),
			fmt.Sprintf("План мероприятия «%s» согласован", card.Title),
			fmt.Sprintf("/cards/%s", card.ID))
	}
	i.getLogger(employeeID, card.ID).Info("План согласован на текущем этапе")
	return "", nil
}

var errChainMoved = errors.New("указатель цепочки согласования сдвинут конкурентно")

// routeToFinal ставит срочную задачу утверждающему, дубль не создаётся
func (i impl) routeToFinal(card *dbmodels.EventCard, authorID string) (taskID, assigneeID string, err error) {
	finalID := *card.FinalApproverID
	resolved, err := delegationhandler.Instance.Resolve(finalID)
	if err != nil {
		return "", "", err
	}
	if resolved != nil {
		finalID = resolved.ID
	}
	exists, err := i.taskStore.ExistsOpenApproval(card.ID, finalID)
	if err != nil {
		return "", "", err
	}
	if exists {
		return "", "", nil
	}
	return i.createApprovalTask(card, finalID, authorID, models.PriorityUrgent)
}

// createApprovalTask пишет задачу и журнал в рамках текущего подключения,
// уведомление получателю отправляет вызывающий после фиксации транзакции
func (i impl) createApprovalTask(card *dbmodels.EventCard, assigneeID, authorID string, priority models.TaskPriority) (string, string, error) {
	resolved, err := delegationhandler.Instance.Resolve(assigneeID)
	if err != nil {
		return "", "", err
	}
	if resolved != nil {
		assigneeID = resolved.ID
	}
	title := fmt.Sprintf("Согласование плана мероприятия «%s»", card.Title)
	task := dbmodels.Task{
		TaskType:           models.TaskTypeApproval,
		Priority:           priority,
		Status:             models.TaskStatusNew,
		CardID:             &card.ID,
		Title:              title,
		CreatedByID:        authorID,
		AssignedEmployeeID: &assigneeID,
	}
	taskID, err := i.taskStore.Create(task)
	if err != nil {
		return "", "", errors.Wrap(err, "Ошибка создания задачи согласования")
	}
	i.history.Audit(taskID, authorID, models.HistoryCreated, title)
	return taskID, assigneeID, nil
}

func (i impl) Reject(employeeID, taskID string, data cardapimodels.PlanRejectData) (string, error) {
	task, card, hMsg, err := i.loadApprovalTask(taskID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	actorID, _, hMsg, err := i.checkActor(employeeID, *card)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		err := txHandler.taskStore.Update(task.ID, map[string]interface{}{
			"status":         models.TaskStatusRejected,
			"review_comment": data.Reason,
		})
		if err != nil {
			return err
		}
		txHandler.history.Audit(task.ID, actorID, models.HistoryRejected, data.Reason)
		return txHandler.cardStore.Update(card.ID, map[string]interface{}{
			"plan_status":          models.PlanStatusRejected,
			"plan_rejected_reason": data.Reason,
			"is_fully_approved":    false,
			"visible":              false,
		})
	})
	if err != nil {
		return "", err
	}
	notificationhandler.Instance.Notify(card.GetCreatedByID(),
		fmt.Sprintf("План мероприятия «%s» отклонён: %s", card.Title, data.Reason),
		fmt.Sprintf("/cards/%s", card.ID))
	i.getLogger(employeeID, card.ID).
		WithField("reason", data.Reason).
		Info("План отклонён")
	return "", nil
}

func (i impl) loadApprovalTask(taskID string) (*dbmodels.Task, *dbmodels.EventCard, string, error) {
	task, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return nil, nil, "", err
	}
	if task == nil || task.TaskType != models.TaskTypeApproval {
		return nil, nil, "Задача согласования не найдена", nil
	}
	if task.Status == models.TaskStatusDone || task.Status == models.TaskStatusRejected {
		return nil, nil, "Решение по этой задаче уже принято", nil
	}
	if task.CardID == nil {
		return nil, nil, "Задача согласования не привязана к карточке", nil
	}
	card, err := i.cardStore.GetByID(*task.CardID)
	if err != nil {
		return nil, nil, "", err
	}
	if card == nil {
		return nil, nil, "Карточка мероприятия не найдена", nil
	}
	if card.PlanStatus != models.PlanStatusPending {
		return nil, nil, "План не находится на согласовании", nil
	}
	return task, card, "", nil
}

// checkActor сверяет сотрудника с допустимыми участниками решения,
// утверждающий принимается на любой позиции цепочки
func (i impl) checkActor(employeeID string, card dbmodels.EventCard) (actorID string, isFinal bool, hMsg string, err error) {
	queueOrder, err := i.approverStore.GetByOrder(card.ID, card.CurrentApproverIndex)
	if err != nil {
		return "", false, "", err
	}
	queueID, finalID := allowedActors(card, queueOrder)
	if queueID == "" && finalID == "" {
		return "", false, "Для плана не настроен процесс согласования", nil
	}
	if finalID != "" {
		ok, err := i.actsFor(employeeID, finalID)
		if err != nil {
			return "", false, "", err
		}
		if ok {
			return employeeID, true, "", nil
		}
	}
	if queueID != "" {
		ok, err := i.actsFor(employeeID, queueID)
		if err != nil {
			return "", false, "", err
		}
		if ok {
			return employeeID, false, "", nil
		}
	}
	return "", false, "Сейчас не ваша очередь согласования", nil
}

// actsFor учитывает передачу полномочий по замещению
func (i impl) actsFor(employeeID, expectedID string) (bool, error) {
	if expectedID == employeeID {
		return true, nil
	}
	resolved, err := delegationhandler.Instance.Resolve(expectedID)
	if err != nil {
		return false, err
	}
	return resolved != nil && resolved.ID == employeeID, nil
}
