package delegationhandler

import (
	"time"

	"event-tracker-backend/db"
	employeestore "event-tracker-backend/lib/employee/store"
	employeeapimodels "event-tracker-backend/models/api/employee"
	dbmodels "event-tracker-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Set(employeeID string, data employeeapimodels.DelegationData) (hMsg string, err error)
	Cancel(employeeID string) (hMsg string, err error)
	My(employeeID string) (view employeeapimodels.MyDelegationView, hMsg string, err error)
	// Resolve возвращает действующего исполнителя с учётом цепочки замещений
	Resolve(employeeID string) (rec *dbmodels.Employee, err error)
	// Sweep снимает просроченное замещение при первом обращении
	Sweep(rec *dbmodels.Employee) (err error)
	IsFrozen(employeeID string) (rec *dbmodels.Employee, frozen bool, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: employeestore.NewInstance(db.DB),
		now:   time.Now,
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: employeestore.NewInstance(tx),
		now:   time.Now,
	}
}

type impl struct {
	store employeestore.Provider
	now   func() time.Time
}

func (i impl) getLogger(employeeID string) *log.Entry {
	return log.WithField("employee_id", employeeID)
}

func (i impl) Set(employeeID string, data employeeapimodels.DelegationData) (string, error) {
	rec, err := i.store.GetByID(employeeID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Сотрудник не найден", nil
	}
	if data.DelegateToID == employeeID {
		return "Нельзя назначить замещающим самого себя", nil
	}
	target, err := i.store.GetByID(data.DelegateToID)
	if err != nil {
		return "", err
	}
	if target == nil {
		return "Замещающий сотрудник не найден", nil
	}
	if rec.DepartmentID == nil || target.DepartmentID == nil || *rec.DepartmentID != *target.DepartmentID {
		return "Замещающий должен быть из того же отдела", nil
	}
	until, err := data.GetUntil()
	if err != nil {
		return "Неверный формат даты окончания замещения", nil
	}
	if dbmodels.ToDate(until).Before(dbmodels.ToDate(i.now())) {
		return "Дата окончания замещения уже прошла", nil
	}
	err = i.store.Update(employeeID, map[string]interface{}{
		"delegate_to_id": data.DelegateToID,
		"delegate_until": dbmodels.ToDate(until),
	})
	if err != nil {
		return "", err
	}
	i.getLogger(employeeID).
		WithField("delegate_to_id", data.DelegateToID).
		Info("Назначено замещение")
	return "", nil
}

func (i impl) Cancel(employeeID string) (string, error) {
	rec, err := i.store.GetByID(employeeID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Сотрудник не найден", nil
	}
	if rec.DelegateToID == nil {
		return "Замещение не назначено", nil
	}
	err = i.clear(employeeID)
	if err != nil {
		return "", err
	}
	i.getLogger(employeeID).Info("Замещение отменено")
	return "", nil
}

func (i impl) My(employeeID string) (employeeapimodels.MyDelegationView, string, error) {
	view := employeeapimodels.MyDelegationView{
		Colleagues: []employeeapimodels.EmployeeView{},
	}
	rec, err := i.store.GetByID(employeeID)
	if err != nil {
		return view, "", err
	}
	if rec == nil {
		return view, "Сотрудник не найден", nil
	}
	err = i.Sweep(rec)
	if err != nil {
		return view, "", err
	}
	today := i.now()
	view.Employee = employeeapimodels.EmployeeConvert(*rec, today)
	if rec.HasActiveDelegation(today) && rec.DelegateTo != nil {
		delegate := employeeapimodels.EmployeeConvert(*rec.DelegateTo, today)
		view.ActiveDelegate = &delegate
	}
	delegators, err := i.store.FindDelegators(employeeID, today)
	if err != nil {
		return view, "", err
	}
	if len(delegators) > 0 {
		from := employeeapimodels.EmployeeConvert(delegators[0], today)
		view.DelegatedFrom = &from
	}
	if rec.DepartmentID != nil {
		colleagues, err := i.store.ListByDepartment(*rec.DepartmentID, employeeID)
		if err != nil {
			return view, "", err
		}
		for _, colleague := range colleagues {
			view.Colleagues = append(view.Colleagues, employeeapimodels.EmployeeConvert(colleague, today))
		}
	}
	return view, "", nil
}

func (i impl) Resolve(employeeID string) (*dbmodels.Employee, error) {
	visited := map[string]bool{}
	currentID := employeeID
	for {
		if visited[currentID] {
			// цикл в цепочке замещений, останавливаемся на текущем
			i.getLogger(employeeID).Warn("Обнаружен цикл в цепочке замещений")
			return i.store.GetByID(currentID)
		}
		visited[currentID] = true
		rec, err := i.store.GetByID(currentID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, nil
		}
		err = i.Sweep(rec)
		if err != nil {
			return nil, err
		}
		if !rec.HasActiveDelegation(i.now()) {
			return rec, nil
		}
		currentID = *rec.DelegateToID
	}
}

func (i impl) Sweep(rec *dbmodels.Employee) error {
	if rec == nil || !rec.DelegationExpired(i.now()) {
		return nil
	}
	err := i.clear(rec.ID)
	if err != nil {
		return err
	}
	rec.DelegateToID = nil
	rec.DelegateTo = nil
	rec.DelegateUntil = nil
	i.getLogger(rec.ID).Info("Срок замещения истёк, замещение снято")
	return nil
}

func (i impl) IsFrozen(employeeID string) (*dbmodels.Employee, bool, error) {
	rec, err := i.store.GetByID(employeeID)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		return nil, false, nil
	}
	err = i.Sweep(rec)
	if err != nil {
		return nil, false, err
	}
	return rec, rec.HasActiveDelegation(i.now()), nil
}

func (i impl) clear(employeeID string) error {
	return i.store.Update(employeeID, map[string]interface{}{
		"delegate_to_id": nil,
		"delegate_until": nil,
	})
}
