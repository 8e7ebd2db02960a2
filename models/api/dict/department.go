package dictapimodels

import (
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
)

type DepartmentData struct {
	Name string `json:"name"`
}

func (d DepartmentData) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название отдела")
	}
	return nil
}

type DepartmentView struct {
	DepartmentData
	ID string `json:"id"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		DepartmentData: DepartmentData{
			Name: rec.Name,
		},
		ID: rec.ID,
	}
}
