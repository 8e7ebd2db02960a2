package taskreviewhandler

import (
	"fmt"
	"time"

	"event-tracker-backend/db"
	notificationhandler "event-tracker-backend/lib/notification"
	taskattachmentstore "event-tracker-backend/lib/task-attachment/store"
	taskhistoryhandler "event-tracker-backend/lib/task-history"
	taskstore "event-tracker-backend/lib/task/store"
	"event-tracker-backend/models"
	taskapimodels "event-tracker-backend/models/api/task"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// EnsureReview создаёт проверочную задачу либо переоткрывает незакрытую,
	// дубли по одной исходной задаче не плодятся
	EnsureReview(original dbmodels.Task, submitterID, comment string) (reviewTaskID string, reopened bool, err error)
	Get(employeeID, taskID string) (view taskapimodels.ReviewView, hMsg string, err error)
	Take(employeeID, taskID string) (hMsg string, err error)
	Approve(employeeID, taskID string, data taskapimodels.ReviewDecisionData) (hMsg string, err error)
	Reject(employeeID, taskID string, data taskapimodels.ReviewDecisionData) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		taskStore:       taskstore.NewInstance(db.DB),
		attachmentStore: taskattachmentstore.NewInstance(db.DB),
		history:         taskhistoryhandler.NewHandlerWithTx(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		taskStore:       taskstore.NewInstance(tx),
		attachmentStore: taskattachmentstore.NewInstance(tx),
		history:         taskhistoryhandler.NewHandlerWithTx(tx),
	}
}

type impl struct {
	taskStore       taskstore.Provider
	attachmentStore taskattachmentstore.Provider
	history         taskhistoryhandler.Provider
}

func (i impl) getLogger(taskID string) *log.Entry {
	return log.WithField("task_id", taskID)
}

func (i impl) EnsureReview(original dbmodels.Task, submitterID, comment string) (string, bool, error) {
	last, err := i.taskStore.LastReviewForOriginal(original.ID)
	if err != nil {
		return "", false, err
	}
	description := fmt.Sprintf("Проверка выполнения задачи «%s»\n%s", original.Title, FormatOrigMarker(original.ID))
	if last != nil && last.Status != models.TaskStatusDone && last.Status != models.TaskStatusRejected {
		// проверка ещё не закрыта, возвращаем её в начало со свежим отчётом
		err = i.taskStore.Update(last.ID, map[string]interface{}{
			"status":      models.TaskStatusNew,
			"description": description,
		})
		if err != nil {
			return "", false, err
		}
		i.history.Audit(last.ID, submitterID, models.HistoryExecutionUpdated, comment)
		return last.ID, true, nil
	}
	review := dbmodels.Task{
		TaskType:           models.TaskTypeReview,
		Priority:           original.Priority,
		Status:             models.TaskStatusNew,
		CardID:             original.CardID,
		Title:              fmt.Sprintf("Проверка: %s", original.Title),
		Description:        description,
		CreatedByID:        submitterID,
		AssignedEmployeeID: &original.CreatedByID,
		OriginalTaskID:     &original.ID,
	}
	reviewID, err := i.taskStore.Create(review)
	if err != nil {
		return "", false, errors.Wrap(err, "Ошибка создания проверочной задачи")
	}
	i.history.Audit(reviewID, submitterID, models.HistoryCreated, "")
	return reviewID, false, nil
}

func (i impl) Get(employeeID, taskID string) (taskapimodels.ReviewView, string, error) {
	view := taskapimodels.ReviewView{
		Attachments: []taskapimodels.AttachmentView{},
		History:     []taskapimodels.HistoryView{},
	}
	task, hMsg, err := i.loadReviewTask(taskID)
	if err != nil || hMsg != "" {
		return view, hMsg, err
	}
	if !i.canDecide(employeeID, *task) && task.CreatedByID != employeeID {
		return view, "Нет доступа к проверочной задаче", nil
	}
	view.Task = taskapimodels.TaskConvert(*task)

	original, err := i.resolveOriginal(*task)
	if err != nil {
		return view, "", err
	}
	if original != nil {
		originalView := taskapimodels.TaskConvert(*original)
		view.Original = &originalView
		// показываются материалы последней отправки на проверку
		submission, err := i.attachmentStore.LastSubmissionByTask(original.ID)
		if err != nil {
			return view, "", err
		}
		if submission != nil {
			view.Comment = submission.Comment
			attachments, err := i.attachmentStore.ListBySubmission(submission.ID)
			if err != nil {
				return view, "", err
			}
			for _, rec := range attachments {
				view.Attachments = append(view.Attachments, taskapimodels.AttachmentConvert(rec))
			}
		}
		view.History, err = i.history.ListByTask(original.ID)
		if err != nil {
			return view, "", err
		}
	}
	return view, "", nil
}

func (i impl) Take(employeeID, taskID string) (hMsg string, err error) {
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		hMsg, err = NewHandlerWithTx(tx).(impl).take(employeeID, taskID)
		return err
	})
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	i.getLogger(taskID).Info("Проверка взята в работу")
	return "", nil
}

// take переводит проверку в работу, исходная задача встаёт на рассмотрение
// и блокируется для исполнителя до решения постановщика
func (i impl) take(employeeID, taskID string) (string, error) {
	task, hMsg, err := i.loadReviewTask(taskID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	if !i.canDecide(employeeID, *task) {
		return "Проверять выполнение может только постановщик задачи", nil
	}
	if !task.Status.IsAllowChange(models.TaskStatusInProgress) {
		return "Задача не ожидает проверки", nil
	}
	original, err := i.resolveOriginal(*task)
	if err != nil {
		return "", err
	}
	if original == nil {
		return "Исходная задача не найдена", nil
	}
	err = i.taskStore.Update(task.ID, map[string]interface{}{
		"status": models.TaskStatusInProgress,
	})
	if err != nil {
		return "", err
	}
	i.history.Audit(task.ID, employeeID, models.HistoryTaken, "")
	if original.Status.IsAllowChange(models.TaskStatusUnderReview) {
		err = i.taskStore.Update(original.ID, map[string]interface{}{
			"status": models.TaskStatusUnderReview,
		})
		if err != nil {
			return "", err
		}
		i.history.Audit(original.ID, employeeID, models.HistoryUnderReview, "")
	}
	return "", nil
}

func (i impl) Approve(employeeID, taskID string, data taskapimodels.ReviewDecisionData) (string, error) {
	task, hMsg, err := i.loadReviewTask(taskID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	if !i.canDecide(employeeID, *task) {
		return "Принять работу может только постановщик задачи", nil
	}
	if !task.Status.IsAllowChange(models.TaskStatusDone) {
		return "Решение по проверке уже принято", nil
	}
	original, err := i.resolveOriginal(*task)
	if err != nil {
		return "", err
	}
	if original == nil {
		return "Исходная задача не найдена", nil
	}
	now := time.Now()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		err := txHandler.taskStore.Update(task.ID, map[string]interface{}{
			"status":         models.TaskStatusDone,
			"review_comment": data.Comment,
			"completed_at":   now,
		})
		if err != nil {
			return err
		}
		txHandler.history.Audit(task.ID, employeeID, models.HistoryDone, data.Comment)
		err = txHandler.taskStore.Update(original.ID, map[string]interface{}{
			"status":         models.TaskStatusDone,
			"review_comment": data.Comment,
			"completed_at":   now,
		})
		if err != nil {
			return err
		}
		txHandler.history.Audit(original.ID, employeeID, models.HistoryCompleted, data.Comment)
		return nil
	})
	if err != nil {
		return "", err
	}
	if original.AssignedEmployeeID != nil {
		notificationhandler.Instance.Notify(*original.AssignedEmployeeID,
			fmt.Sprintf("Работа по задаче «%s» принята", original.Title),
			fmt.Sprintf("/tasks/%s", original.ID))
	}
	i.getLogger(taskID).Info("Работа принята")
	return "", nil
}

func (i impl) Reject(employeeID, taskID string, data taskapimodels.ReviewDecisionData) (string, error) {
	if data.Comment == "" {
		return "Укажите причину возврата задачи на доработку", nil
	}
	task, hMsg, err := i.loadReviewTask(taskID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	if !i.canDecide(employeeID, *task) {
		return "Вернуть работу на доработку может только постановщик задачи", nil
	}
	if !task.Status.IsAllowChange(models.TaskStatusDone) {
		return "Решение по проверке уже принято", nil
	}
	original, err := i.resolveOriginal(*task)
	if err != nil {
		return "", err
	}
	if original == nil {
		return "Исходная задача не найдена", nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		err := txHandler.taskStore.Update(task.ID, map[string]interface{}{
			"status":         models.TaskStatusDone,
			"review_comment": data.Comment,
		})
		if err != nil {
			return err
		}
		txHandler.history.Audit(task.ID, employeeID, models.HistoryRejected, data.Comment)
		err = txHandler.taskStore.Update(original.ID, map[string]interface{}{
			"status":         models.TaskStatusRejected,
			"review_comment": data.Comment,
		})
		if err != nil {
			return err
		}
		txHandler.history.Audit(original.ID, employeeID, models.HistoryRejected, data.Comment)
		return nil
	})
	if err != nil {
		return "", err
	}
	if original.AssignedEmployeeID != nil {
		notificationhandler.Instance.Notify(*original.AssignedEmployeeID,
			fmt.Sprintf("Задача «%s» возвращена на доработку: %s", original.Title, data.Comment),
			fmt.Sprintf("/tasks/%s", original.ID))
	}
	i.getLogger(taskID).
		WithField("reason", data.Comment).
		Info("Работа возвращена на доработку")
	return "", nil
}

func (i impl) loadReviewTask(taskID string) (*dbmodels.Task, string, error) {
	task, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return nil, "", err
	}
	if task == nil || task.TaskType != models.TaskTypeReview {
		return nil, "Проверочная задача не найдена", nil
	}
	return task, "", nil
}

func (i impl) canDecide(employeeID string, task dbmodels.Task) bool {
	return task.AssignedEmployeeID != nil && *task.AssignedEmployeeID == employeeID
}

// resolveOriginal ищет исходную задачу по явной ссылке,
// для старых записей разбирается маркер в описании
func (i impl) resolveOriginal(task dbmodels.Task) (*dbmodels.Task, error) {
	originalID := ""
	if task.OriginalTaskID != nil {
		originalID = *task.OriginalTaskID
	} else {
		originalID = ParseOrigMarker(task.Description)
	}
	if originalID == "" {
		return nil, nil
	}
	return i.taskStore.GetByID(originalID)
}
