package taskhistoryhandler

import (
	"event-tracker-backend/db"
	taskhistorystore "event-tracker-backend/lib/task-history/store"
	"event-tracker-backend/models"
	taskapimodels "event-tracker-backend/models/api/task"
	dbmodels "event-tracker-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// Audit пишет запись журнала, ошибка не прерывает основной сценарий
	Audit(taskID, employeeID string, action models.HistoryAction, comment string)
	ListByTask(taskID string) ([]taskapimodels.HistoryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: taskhistorystore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: taskhistorystore.NewInstance(tx),
	}
}

type impl struct {
	store taskhistorystore.Provider
}

func (i impl) Audit(taskID, employeeID string, action models.HistoryAction, comment string) {
	rec := dbmodels.TaskHistory{
		TaskID:  taskID,
		Action:  action,
		Comment: comment,
	}
	if employeeID != "" {
		rec.EmployeeID = &employeeID
	}
	_, err := i.store.Create(rec)
	if err != nil {
		log.
			WithField("task_id", taskID).
			WithError(err).
			Error("Ошибка добавления записи в историю задачи")
	}
}

func (i impl) ListByTask(taskID string) ([]taskapimodels.HistoryView, error) {
	list, err := i.store.ListByTask(taskID)
	if err != nil {
		return nil, err
	}
	result := make([]taskapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, taskapimodels.HistoryConvert(rec))
	}
	return result, nil
}
