package employeeapimodels

import (
	"time"

	"event-tracker-backend/models"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
)

type EmployeeView struct {
	ID             string              `json:"id"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	Email          string              `json:"email"`
	Position       string              `json:"position"`
	Role           models.EmployeeRole `json:"role"`
	RoleName       string              `json:"role_name"`
	DepartmentID   string              `json:"department_id,omitempty"`
	DepartmentName string              `json:"department_name,omitempty"`

	DelegateToID   string     `json:"delegate_to_id,omitempty"`
	DelegateToName string     `json:"delegate_to_name,omitempty"`
	DelegateUntil  *time.Time `json:"delegate_until,omitempty"`
	IsFrozen       bool       `json:"is_frozen"`
}

func EmployeeConvert(rec dbmodels.Employee, today time.Time) EmployeeView {
	view := EmployeeView{
		ID:        rec.ID,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Email:     rec.Email,
		Position:  rec.Position,
		Role:      rec.Role,
		RoleName:  rec.Role.ToHuman(),
		IsFrozen:  rec.HasActiveDelegation(today),
	}
	if rec.DepartmentID != nil {
		view.DepartmentID = *rec.DepartmentID
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.Name
	}
	if rec.HasActiveDelegation(today) {
		view.DelegateToID = *rec.DelegateToID
		view.DelegateUntil = rec.DelegateUntil
		if rec.DelegateTo != nil {
			view.DelegateToName = rec.DelegateTo.GetFullName()
		}
	}
	return view
}

type DelegationData struct {
	DelegateToID  string `json:"delegate_to_id"`
	DelegateUntil string `json:"delegate_until"` // дата формата 2006-01-02
}

func (d DelegationData) Validate() error {
	if d.DelegateToID == "" {
		return errors.New("не выбран замещающий сотрудник")
	}
	if d.DelegateUntil == "" {
		return errors.New("не указана дата окончания замещения")
	}
	if _, err := d.GetUntil(); err != nil {
		return errors.New("неверный формат даты окончания замещения")
	}
	return nil
}

func (d DelegationData) GetUntil() (time.Time, error) {
	return time.Parse("2006-01-02", d.DelegateUntil)
}

type MyDelegationView struct {
	Employee       EmployeeView   `json:"employee"`
	ActiveDelegate *EmployeeView  `json:"active_delegate,omitempty"` // кому переданы полномочия
	DelegatedFrom  *EmployeeView  `json:"delegated_from,omitempty"`  // кого замещает сотрудник
	Colleagues     []EmployeeView `json:"colleagues"`                // возможные замещающие из отдела
}
