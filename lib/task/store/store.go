package taskstore

import (
	"time"

	"event-tracker-backend/models"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Task) (id string, err error)
	GetByID(id string) (rec *dbmodels.Task, err error)
	Update(id string, updMap map[string]interface{}) error
	ReplaceCC(taskID string, employees []dbmodels.Employee) error
	Delete(id string) error

	ListByCard(cardID string, statuses []models.TaskStatus) (list []dbmodels.Task, err error)
	ListByCardForEmployee(cardID, employeeID string) (list []dbmodels.Task, err error)
	ListByCardForDepartment(cardID, departmentID string) (list []dbmodels.Task, err error)
	CountByCard(cardID string) (total, done int64, err error)

	// ExistsOpenApproval защищает цепочку согласования от дублей задач
	ExistsOpenApproval(cardID, assigneeID string) (exists bool, err error)
	LastReviewForOriginal(originalTaskID string) (rec *dbmodels.Task, err error)

	ListAssigned(employeeID string, statuses []models.TaskStatus, taskTypes []models.TaskType) (list []dbmodels.Task, err error)
	ListCreated(employeeID string, statuses []models.TaskStatus) (list []dbmodels.Task, err error)
	ListUrgent(employeeID string, dueBefore time.Time) (list []dbmodels.Task, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Task) (id string, err error) {
	err = i.db.
		Omit("Card", "CreatedBy", "AssignedEmployee", "AssignedDepartment", "Recipients", "CC").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	err := i.db.
		Where("id = ?", id).
		Preload("Card").
		Preload("CreatedBy").
		Preload("AssignedEmployee").
		Preload("AssignedDepartment").
		Preload("Recipients").
		Preload("CC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ReplaceCC(taskID string, employees []dbmodels.Employee) error {
	rec := dbmodels.Task{
		BaseModel: dbmodels.BaseModel{ID: taskID},
	}
	return i.db.Model(&rec).Association("CC").Replace(employees)
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Task{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByCard(cardID string, statuses []models.TaskStatus) (list []dbmodels.Task, err error) {
	tx := i.db.Where("card_id = ?", cardID)
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	return i.find(tx)
}

func (i impl) ListByCardForEmployee(cardID, employeeID string) (list []dbmodels.Task, err error) {
	tx := i.db.
		Where("card_id = ?", cardID).
		Where("assigned_employee_id = ? OR created_by_id = ?", employeeID, employeeID)
	return i.find(tx)
}

func (i impl) ListByCardForDepartment(cardID, departmentID string) (list []dbmodels.Task, err error) {
	tx := i.db.
		Where("card_id = ?", cardID).
		Where("assigned_department_id = ?", departmentID)
	return i.find(tx)
}

func (i impl) CountByCard(cardID string) (total, done int64, err error) {
	err = i.db.
		Model(&dbmodels.Task{}).
		Where("card_id = ?", cardID).
		Where("task_type = ?", models.TaskTypeRegular).
		Count(&total).
		Error
	if err != nil {
		return 0, 0, err
	}
	err = i.db.
		Model(&dbmodels.Task{}).
		Where("card_id = ?", cardID).
		Where("task_type = ?", models.TaskTypeRegular).
		Where("status = ?", models.TaskStatusDone).
		Count(&done).
		Error
	if err != nil {
		return 0, 0, err
	}
	return total, done, nil
}

func (i impl) ExistsOpenApproval(cardID, assigneeID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Task{}).
		Where("card_id = ?", cardID).
		Where("assigned_employee_id = ?", assigneeID).
		Where("task_type = ?", models.TaskTypeApproval).
		Where("status NOT IN ?", []models.TaskStatus{models.TaskStatusDone, models.TaskStatusRejected}).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) LastReviewForOriginal(originalTaskID string) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	err := i.db.
		Where("original_task_id = ?", originalTaskID).
		Where("task_type = ?", models.TaskTypeReview).
		Order("created_at DESC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListAssigned(employeeID string, statuses []models.TaskStatus, taskTypes []models.TaskType) (list []dbmodels.Task, err error) {
	tx := i.db.Where("assigned_employee_id = ?", employeeID)
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	if len(taskTypes) > 0 {
		tx = tx.Where("task_type IN ?", taskTypes)
	}
	return i.find(tx)
}

func (i impl) ListCreated(employeeID string, statuses []models.TaskStatus) (list []dbmodels.Task, err error) {
	tx := i.db.Where("created_by_id = ?", employeeID)
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	return i.find(tx)
}

func (i impl) ListUrgent(employeeID string, dueBefore time.Time) (list []dbmodels.Task, err error) {
	tx := i.db.
		Where("assigned_employee_id = ?", employeeID).
		Where("status NOT IN ?", []models.TaskStatus{models.TaskStatusDone, models.TaskStatusRejected}).
		Where("(priority = ? OR (deadline IS NOT NULL AND deadline <= ?))", models.PriorityUrgent, dbmodels.ToDate(dueBefore))
	return i.find(tx)
}

func (i impl) find(tx *gorm.DB) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	err = tx.
		Order("created_at DESC").
		Preload("Card").
		Preload("CreatedBy").
		Preload("AssignedEmployee").
		Preload("AssignedDepartment").
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
