package notificationstore

import (
	notificationapimodels "event-tracker-backend/models/api/notification"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	GetByID(id string) (rec *dbmodels.Notification, err error)
	List(employeeID string, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, err error)
	ListCount(employeeID string, filter notificationapimodels.NotificationFilter) (count int64, err error)
	CountUnread(employeeID string) (count int64, err error)
	MarkRead(employeeID, id string) error
	MarkAllRead(employeeID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.
		Omit("Employee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Notification, error) {
	rec := dbmodels.Notification{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) List(employeeID string, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	tx := i.db.
		Where("employee_id = ?", employeeID).
		Order("created_at DESC")
	if filter.UnreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(employeeID string, filter notificationapimodels.NotificationFilter) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("employee_id = ?", employeeID)
	if filter.UnreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}

func (i impl) CountUnread(employeeID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("employee_id = ?", employeeID).
		Where("is_read = ?", false).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) MarkRead(employeeID, id string) error {
	err := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("employee_id = ?", employeeID).
		Update("is_read", true).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) MarkAllRead(employeeID string) error {
	err := i.db.
		Model(&dbmodels.Notification{}).
		Where("employee_id = ?", employeeID).
		Where("is_read = ?", false).
		Update("is_read", true).
		Error
	if err != nil {
		return err
	}
	return nil
}
