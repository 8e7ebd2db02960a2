package employeehandler

import (
	"time"

	"event-tracker-backend/db"
	employeestore "event-tracker-backend/lib/employee/store"
	employeeapimodels "event-tracker-backend/models/api/employee"
)

type Provider interface {
	List() ([]employeeapimodels.EmployeeView, error)
	GetByID(id string) (view employeeapimodels.EmployeeView, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	store employeestore.Provider
}

func (i impl) List() ([]employeeapimodels.EmployeeView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	today := time.Now()
	result := make([]employeeapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		result = append(result, employeeapimodels.EmployeeConvert(rec, today))
	}
	return result, nil
}

func (i impl) GetByID(id string) (employeeapimodels.EmployeeView, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return employeeapimodels.EmployeeView{}, "", err
	}
	if rec == nil {
		return employeeapimodels.EmployeeView{}, "Сотрудник не найден", nil
	}
	return employeeapimodels.EmployeeConvert(*rec, time.Now()), "", nil
}
