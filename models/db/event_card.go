package dbmodels

import (
	"time"

	"event-tracker-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventCard struct {
	BaseModel
	Title       string `gorm:"type:varchar(255)"`
	Description string

	HasPlan            bool
	PlanFileName       string            `gorm:"type:varchar(512)"` // только ссылка на файл, байты хранит внешний сервис
	PlanStatus         models.PlanStatus `gorm:"type:varchar(20)"`
	PlanSubmittedAt    *time.Time
	PlanApprovedAt     *time.Time
	PlanRejectedReason string

	StartDate time.Time  `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`

	// пусто у служебных карточек, создаваемых планировщиком
	CreatedByID *string   `gorm:"type:varchar(36)"`
	CreatedBy   *Employee `gorm:"foreignKey:CreatedByID"`

	ResponsibleDepartmentID *string      `gorm:"type:varchar(36)"`
	ResponsibleDepartment   *Department  `gorm:"foreignKey:ResponsibleDepartmentID;constraint:OnDelete:SET NULL"`
	SharedDepartments       []Department `gorm:"many2many:event_card_shared_departments"`

	FinalApproverID *string   `gorm:"type:varchar(36)"`
	FinalApprover   *Employee `gorm:"foreignKey:FinalApproverID"`

	// позиция в цепочке согласования; терминальное значение равно числу согласующих
	CurrentApproverIndex int
	IsFullyApproved      bool

	// доступна ли карточка для создания задач
	Visible bool
}

func (c EventCard) GetCreatedByID() string {
	if c.CreatedByID == nil {
		return ""
	}
	return *c.CreatedByID
}

func (c EventCard) IsCreatedBy(employeeID string) bool {
	return c.CreatedByID != nil && *c.CreatedByID == employeeID
}

func (c *EventCard) AfterDelete(tx *gorm.DB) (err error) {
	if c.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("card_id = ?", c.ID).Delete(&Task{})
	tx.Clauses(clause.Returning{}).Where("card_id = ?", c.ID).Delete(&CardApproverOrder{})
	return
}

// CardApproverOrder задаёт очерёдность согласующих по карточке (с нуля)
type CardApproverOrder struct {
	BaseModel
	CardID     string    `gorm:"type:varchar(36);index:idx_card_approver"`
	EmployeeID string    `gorm:"type:varchar(36)"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID"`
	OrderNum   int
}
