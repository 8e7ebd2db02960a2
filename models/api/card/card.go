package cardapimodels

import (
	"math"
	"time"

	"event-tracker-backend/models"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
)

type CardData struct {
	Title                   string   `json:"title"`
	Description             string   `json:"description"`
	HasPlan                 bool     `json:"has_plan"`
	PlanFileName            string   `json:"plan_file_name"`
	StartDate               string   `json:"start_date"` // дата формата 2006-01-02
	EndDate                 string   `json:"end_date"`
	ResponsibleDepartmentID string   `json:"responsible_department_id"`
	SharedDepartmentIDs     []string `json:"shared_department_ids"`
	ApproverIDs             []string `json:"approver_ids"` // порядок списка задаёт очерёдность согласования
	FinalApproverID         string   `json:"final_approver_id"`
}

func (c CardData) Validate() error {
	if c.Title == "" {
		return errors.New("не указано название мероприятия")
	}
	if c.StartDate != "" {
		if _, err := time.Parse("2006-01-02", c.StartDate); err != nil {
			return errors.New("неверный формат даты начала")
		}
	}
	if c.EndDate != "" {
		if _, err := time.Parse("2006-01-02", c.EndDate); err != nil {
			return errors.New("неверный формат даты окончания")
		}
	}
	if c.HasPlan && c.PlanFileName != "" && len(c.ApproverIDs) == 0 && c.FinalApproverID == "" {
		return errors.New("для плана не настроен процесс согласования")
	}
	return nil
}

type CardView struct {
	ID                        string            `json:"id"`
	Title                     string            `json:"title"`
	Description               string            `json:"description"`
	HasPlan                   bool              `json:"has_plan"`
	PlanFileName              string            `json:"plan_file_name,omitempty"`
	PlanStatus                models.PlanStatus `json:"plan_status"`
	PlanStatusName            string            `json:"plan_status_name"`
	PlanRejectedReason        string            `json:"plan_rejected_reason,omitempty"`
	PlanSubmittedAt           *time.Time        `json:"plan_submitted_at,omitempty"`
	PlanApprovedAt            *time.Time        `json:"plan_approved_at,omitempty"`
	StartDate                 time.Time         `json:"start_date"`
	EndDate                   *time.Time        `json:"end_date,omitempty"`
	CreatedByID               string            `json:"created_by_id"`
	CreatedByName             string            `json:"created_by_name,omitempty"`
	ResponsibleDepartmentID   string            `json:"responsible_department_id,omitempty"`
	ResponsibleDepartmentName string            `json:"responsible_department_name,omitempty"`
	FinalApproverID           string            `json:"final_approver_id,omitempty"`
	FinalApproverName         string            `json:"final_approver_name,omitempty"`
	CurrentApproverIndex      int               `json:"current_approver_index"`
	IsFullyApproved           bool              `json:"is_fully_approved"`
	Visible                   bool              `json:"visible"`
	Progress                  float64           `json:"progress"`

	Approvers []ApproverView `json:"approvers,omitempty"`

	SharedDepartmentNames []string `json:"shared_department_names,omitempty"`

	// счётчики задач для бейджей списка
	OpenCount int64 `json:"open_count"`
	DoneCount int64 `json:"done_count"`
}

type ApproverView struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	OrderNum     int    `json:"order_num"`
}

func CardConvert(rec dbmodels.EventCard) CardView {
	view := CardView{
		ID:                   rec.ID,
		Title:                rec.Title,
		Description:          rec.Description,
		HasPlan:              rec.HasPlan,
		PlanFileName:         rec.PlanFileName,
		PlanStatus:           rec.PlanStatus,
		PlanStatusName:       rec.PlanStatus.ToHuman(),
		PlanRejectedReason:   rec.PlanRejectedReason,
		PlanSubmittedAt:      rec.PlanSubmittedAt,
		PlanApprovedAt:       rec.PlanApprovedAt,
		StartDate:            rec.StartDate,
		EndDate:              rec.EndDate,
		CreatedByID:          rec.GetCreatedByID(),
		CurrentApproverIndex: rec.CurrentApproverIndex,
		IsFullyApproved:      rec.IsFullyApproved,
		Visible:              rec.Visible,
	}
	if rec.CreatedBy != nil {
		view.CreatedByName = rec.CreatedBy.GetFullName()
	}
	if rec.ResponsibleDepartmentID != nil {
		view.ResponsibleDepartmentID = *rec.ResponsibleDepartmentID
	}
	if rec.ResponsibleDepartment != nil {
		view.ResponsibleDepartmentName = rec.ResponsibleDepartment.Name
	}
	if rec.FinalApproverID != nil {
		view.FinalApproverID = *rec.FinalApproverID
	}
	if rec.FinalApprover != nil {
		view.FinalApproverName = rec.FinalApprover.GetFullName()
	}
	for _, department := range rec.SharedDepartments {
		view.SharedDepartmentNames = append(view.SharedDepartmentNames, department.Name)
	}
	return view
}

func ApproverConvert(rec dbmodels.CardApproverOrder) ApproverView {
	view := ApproverView{
		EmployeeID: rec.EmployeeID,
		OrderNum:   rec.OrderNum,
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.GetFullName()
	}
	return view
}

// Progress - процент выполненных задач карточки, один знак после запятой
func Progress(done, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(done)/float64(total)*1000) / 10
}

type CardTasksFilter struct {
	Owner  string `json:"owner"`  // mine/department/all
	Filter string `json:"filter"` // all/review/urgent/new/in_progress/done
}

type PlanRejectData struct {
	Reason string `json:"reason"`
}

func (d PlanRejectData) Validate() error {
	if d.Reason == "" {
		return errors.New("не указана причина отклонения плана")
	}
	return nil
}

type PlanResubmitData struct {
	PlanFileName string `json:"plan_file_name"`
}

func (d PlanResubmitData) Validate() error {
	if d.PlanFileName == "" {
		return errors.New("не приложен файл плана")
	}
	return nil
}
