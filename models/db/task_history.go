package dbmodels

import (
	"event-tracker-backend/models"
)

// TaskHistory - журнал переходов по задаче, только добавление, записи не меняются
type TaskHistory struct {
	BaseModel
	TaskID     string               `gorm:"type:varchar(36);index"`
	EmployeeID *string              `gorm:"type:varchar(36)"`
	Employee   *Employee            `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL"`
	Action     models.HistoryAction `gorm:"type:varchar(50)"`
	Comment    string
}
