package taskhistorystore

import (
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.TaskHistory) (id string, err error)
	ListByTask(taskID string) (list []dbmodels.TaskHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TaskHistory) (id string, err error) {
	err = i.db.
		Omit("Task", "Employee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByTask(taskID string) (list []dbmodels.TaskHistory, err error) {
	list = []dbmodels.TaskHistory{}
	err = i.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Preload("Employee").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
