package cardapproverstore

import (
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	// ReplaceForCard заменяет очередь согласующих целиком, порядок списка сохраняется
	ReplaceForCard(cardID string, employeeIDs []string) error
	ListByCard(cardID string) (list []dbmodels.CardApproverOrder, err error)
	GetByOrder(cardID string, orderNum int) (rec *dbmodels.CardApproverOrder, err error)
	DeleteByCard(cardID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) ReplaceForCard(cardID string, employeeIDs []string) error {
	err := i.db.
		Where("card_id = ?", cardID).
		Delete(&dbmodels.CardApproverOrder{}).
		Error
	if err != nil {
		return err
	}
	for orderNum, employeeID := range employeeIDs {
		rec := dbmodels.CardApproverOrder{
			CardID:     cardID,
			EmployeeID: employeeID,
			OrderNum:   orderNum,
		}
		err = i.db.
			Omit("Employee").
			Save(&rec).
			Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (i impl) ListByCard(cardID string) (list []dbmodels.CardApproverOrder, err error) {
	list = []dbmodels.CardApproverOrder{}
	err = i.db.
		Where("card_id = ?", cardID).
		Order("order_num ASC").
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

func (i impl) GetByOrder(cardID string, orderNum int) (*dbmodels.CardApproverOrder, error) {
	rec := dbmodels.CardApproverOrder{}
	err := i.db.
		Where("card_id = ?", cardID).
		Where("order_num = ?", orderNum).
		Preload("Employee").
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

func (i impl) DeleteByCard(cardID string) error {
	err := i.db.
		Where("card_id = ?", cardID).
		Delete(&dbmodels.CardApproverOrder{}).
		Error
	if err != nil {
		return err
	}
	return nil
}
