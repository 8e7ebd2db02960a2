package departmentprovider

import (
	"event-tracker-backend/db"
	store "event-tracker-backend/lib/dicts/department/store"
	initchecker "event-tracker-backend/lib/utils/init-checker"
	dictapimodels "event-tracker-backend/models/api/dict"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(request dictapimodels.DepartmentData) (id string, hMsg string, err error)
	Update(id string, request dictapimodels.DepartmentData) error
	Get(id string) (item dictapimodels.DepartmentView, err error)
	List() (list []dictapimodels.DepartmentView, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: store.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store store.Provider
}

func (i impl) Create(request dictapimodels.DepartmentData) (string, string, error) {
	exist, err := i.store.GetByName(request.Name)
	if err != nil {
		return "", "", err
	}
	if exist != nil {
		return "", "Отдел с таким названием уже существует", nil
	}
	rec := dbmodels.Department{
		Name: request.Name,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	log.
		WithField("department_name", rec.Name).
		WithField("rec_id", id).
		Info("создан отдел")
	return id, "", nil
}

func (i impl) Update(id string, request dictapimodels.DepartmentData) error {
	updMap := map[string]interface{}{
		"name": request.Name,
	}
	err := i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("обновлён отдел")
	return nil
}

func (i impl) Get(id string) (dictapimodels.DepartmentView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.DepartmentView{}, err
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, errors.New("отдел не найден")
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) List() ([]dictapimodels.DepartmentView, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.DepartmentView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.DepartmentConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(id string) error {
	err := i.store.Delete(id)
	if err != nil {
		return err
	}
	log.WithField("rec_id", id).Info("удалён отдел")
	return nil
}
