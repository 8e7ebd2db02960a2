package dbmodels

import (
	"fmt"
	"time"

	"event-tracker-backend/models"
)

type Employee struct {
	BaseModel
	FirstName    string              `gorm:"type:varchar(150)"`
	LastName     string              `gorm:"type:varchar(150)"`
	Email        string              `gorm:"type:varchar(255)"`
	Position     string              `gorm:"type:varchar(255)"`
	Role         models.EmployeeRole `gorm:"type:varchar(20)"`
	DepartmentID *string             `gorm:"type:varchar(36)"`
	Department   *Department         `gorm:"constraint:OnDelete:SET NULL"`

	// исходящее замещение: кому и до какой даты (включительно) переданы полномочия
	DelegateToID  *string    `gorm:"type:varchar(36)"`
	DelegateTo    *Employee  `gorm:"foreignKey:DelegateToID;constraint:OnDelete:SET NULL"`
	DelegateUntil *time.Time `gorm:"type:date"`
}

func (e Employee) GetFullName() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

// HasActiveDelegation - действует ли замещение на указанную дату
func (e Employee) HasActiveDelegation(today time.Time) bool {
	if e.DelegateToID == nil || e.DelegateUntil == nil {
		return false
	}
	return !ToDate(today).After(ToDate(*e.DelegateUntil))
}

// DelegationExpired - замещение назначено, но срок уже прошёл
func (e Employee) DelegationExpired(today time.Time) bool {
	if e.DelegateToID == nil || e.DelegateUntil == nil {
		return false
	}
	return ToDate(today).After(ToDate(*e.DelegateUntil))
}

// ToDate отбрасывает время, сравнение сроков замещения идёт по датам
func ToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
