package eventcardstore

import (
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.EventCard) (id string, err error)
	GetByID(id string) (rec *dbmodels.EventCard, err error)
	GetByTitle(title string) (rec *dbmodels.EventCard, err error)
	Update(id string, updMap map[string]interface{}) error
	ReplaceSharedDepartments(cardID string, departments []dbmodels.Department) error
	// UpdateApproverIndexCAS двигает указатель цепочки только из ожидаемой позиции,
	// возвращает false при конкурентном сдвиге
	UpdateApproverIndexCAS(id string, expected, next int, updMap map[string]interface{}) (moved bool, err error)
	Delete(id string) error
	List() (list []dbmodels.EventCard, err error)
	ListVisible() (list []dbmodels.EventCard, err error)
	ListByCreator(employeeID string) (list []dbmodels.EventCard, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EventCard) (id string, err error) {
	err = i.db.
		Omit("CreatedBy", "ResponsibleDepartment", "SharedDepartments", "FinalApprover").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ReplaceSharedDepartments(cardID string, departments []dbmodels.Department) error {
	rec := dbmodels.EventCard{
		BaseModel: dbmodels.BaseModel{ID: cardID},
	}
	return i.db.Model(&rec).Association("SharedDepartments").Replace(departments)
}

func (i impl) GetByID(id string) (*dbmodels.EventCard, error) {
	rec := dbmodels.EventCard{}
	err := i.db.
		Where("id = ?", id).
		Preload("CreatedBy").
		Preload("ResponsibleDepartment").
		Preload("SharedDepartments").
		Preload("FinalApprover").
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

func (i impl) GetByTitle(title string) (*dbmodels.EventCard, error) {
	rec := dbmodels.EventCard{}
	err := i.db.
		Where("title = ?", title).
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
		Model(&dbmodels.EventCard{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) UpdateApproverIndexCAS(id string, expected, next int, updMap map[string]interface{}) (bool, error) {
	if updMap == nil {
		updMap = map[string]interface{}{}
	}
	updMap["current_approver_index"] = next
	tx := i.db.
		Model(&dbmodels.EventCard{}).
		Where("id = ?", id).
		Where("current_approver_index = ?", expected).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.EventCard{
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

func (i impl) List() (list []dbmodels.EventCard, err error) {
	return i.find(i.db)
}

func (i impl) ListVisible() (list []dbmodels.EventCard, err error) {
	return i.find(i.db.Where("visible = ?", true))
}

func (i impl) ListByCreator(employeeID string) (list []dbmodels.EventCard, err error) {
	return i.find(i.db.Where("created_by_id = ?", employeeID))
}

func (i impl) find(tx *gorm.DB) (list []dbmodels.EventCard, err error) {
	list = []dbmodels.EventCard{}
	err = tx.
		Order("start_date DESC, created_at DESC").
		Preload("CreatedBy").
		Preload("ResponsibleDepartment").
		Preload("FinalApprover").
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
