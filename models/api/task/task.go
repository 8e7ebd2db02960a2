package taskapimodels

import (
	"time"

	"event-tracker-backend/models"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
)

type TaskData struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Priority             string   `json:"priority"`
	RecipientIDs         []string `json:"recipient_ids"`
	RecipientDepartments []string `json:"recipient_departments"`
	CCIDs                []string `json:"cc_ids"`
	Deadline             string   `json:"deadline"` // дата формата 2006-01-02
	ExternalLink         string   `json:"external_link"`
	AttachmentName       string   `json:"attachment_name"`
}

func (t TaskData) Validate() error {
	if t.Title == "" {
		return errors.New("не указано название задачи")
	}
	if len(t.RecipientIDs) == 0 && len(t.RecipientDepartments) == 0 {
		return errors.New("не выбраны получатели задачи")
	}
	if t.Priority != "" && !models.TaskPriority(t.Priority).IsValid() {
		return errors.New("неверный приоритет задачи")
	}
	if t.Deadline != "" {
		if _, err := time.Parse("2006-01-02", t.Deadline); err != nil {
			return errors.New("неверный формат срока выполнения")
		}
	}
	return nil
}

func (t TaskData) GetDeadline() *time.Time {
	if t.Deadline == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", t.Deadline)
	if err != nil {
		return nil
	}
	return &parsed
}

type ExecuteData struct {
	Comment        string `json:"comment"`
	AttachmentName string `json:"attachment_name"`
	Link           string `json:"link"`
}

func (d ExecuteData) Validate() error {
	if d.Comment == "" && d.AttachmentName == "" && d.Link == "" {
		return errors.New("отчёт о выполнении пуст")
	}
	return nil
}

type RedirectData struct {
	EmployeeID string `json:"employee_id"`
	Comment    string `json:"comment"`
}

func (d RedirectData) Validate() error {
	if d.EmployeeID == "" {
		return errors.New("не выбран сотрудник для перенаправления")
	}
	return nil
}

type ReviewDecisionData struct {
	Comment string `json:"comment"`
}

type TaskView struct {
	ID                     string              `json:"id"`
	TaskType               models.TaskType     `json:"task_type"`
	TaskTypeName           string              `json:"task_type_name"`
	Priority               models.TaskPriority `json:"priority"`
	Status                 models.TaskStatus   `json:"status"`
	StatusName             string              `json:"status_name"`
	CardID                 string              `json:"card_id,omitempty"`
	CardTitle              string              `json:"card_title,omitempty"`
	Title                  string              `json:"title"`
	Description            string              `json:"description"`
	CreatedByID            string              `json:"created_by_id"`
	CreatedByName          string              `json:"created_by_name,omitempty"`
	AssignedEmployeeID     string              `json:"assigned_employee_id,omitempty"`
	AssignedEmployeeName   string              `json:"assigned_employee_name,omitempty"`
	AssignedDepartmentID   string              `json:"assigned_department_id,omitempty"`
	AssignedDepartmentName string              `json:"assigned_department_name,omitempty"`
	Recipients             []string            `json:"recipients,omitempty"`
	Deadline               *time.Time          `json:"deadline,omitempty"`
	DueDate                *time.Time          `json:"due_date,omitempty"`
	ExternalLink           string              `json:"external_link,omitempty"`
	AttachmentName         string              `json:"attachment_name,omitempty"`
	ReviewComment          string              `json:"review_comment,omitempty"`
	CompletedAt            *time.Time          `json:"completed_at,omitempty"`
	OriginalTaskID         string              `json:"original_task_id,omitempty"`
	CreatedAt              time.Time           `json:"created_at"`
}

func TaskConvert(rec dbmodels.Task) TaskView {
	view := TaskView{
		ID:             rec.ID,
		TaskType:       rec.TaskType,
		TaskTypeName:   rec.TaskType.ToHuman(),
		Priority:       rec.Priority,
		Status:         rec.Status,
		StatusName:     rec.Status.ToHuman(),
		Title:          rec.Title,
		Description:    rec.Description,
		CreatedByID:    rec.CreatedByID,
		Deadline:       rec.Deadline,
		DueDate:        rec.DueDate,
		ExternalLink:   rec.ExternalLink,
		AttachmentName: rec.AttachmentName,
		ReviewComment:  rec.ReviewComment,
		CompletedAt:    rec.CompletedAt,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.CardID != nil {
		view.CardID = *rec.CardID
	}
	if rec.Card != nil {
		view.CardTitle = rec.Card.Title
	}
	if rec.CreatedBy != nil {
		view.CreatedByName = rec.CreatedBy.GetFullName()
	}
	if rec.AssignedEmployeeID != nil {
		view.AssignedEmployeeID = *rec.AssignedEmployeeID
	}
	if rec.AssignedEmployee != nil {
		view.AssignedEmployeeName = rec.AssignedEmployee.GetFullName()
	}
	if rec.AssignedDepartmentID != nil {
		view.AssignedDepartmentID = *rec.AssignedDepartmentID
	}
	if rec.AssignedDepartment != nil {
		view.AssignedDepartmentName = rec.AssignedDepartment.Name
	}
	if rec.OriginalTaskID != nil {
		view.OriginalTaskID = *rec.OriginalTaskID
	}
	for _, recipient := range rec.Recipients {
		view.Recipients = append(view.Recipients, recipient.GetFullName())
	}
	return view
}

type HistoryView struct {
	ID           string               `json:"id"`
	Action       models.HistoryAction `json:"action"`
	ActionName   string               `json:"action_name"`
	EmployeeID   string               `json:"employee_id,omitempty"`
	EmployeeName string               `json:"employee_name,omitempty"`
	Comment      string               `json:"comment,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

func HistoryConvert(rec dbmodels.TaskHistory) HistoryView {
	view := HistoryView{
		ID:         rec.ID,
		Action:     rec.Action,
		ActionName: rec.Action.ToHuman(),
		Comment:    rec.Comment,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.EmployeeID != nil {
		view.EmployeeID = *rec.EmployeeID
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.GetFullName()
	}
	return view
}

type AttachmentView struct {
	ID             string    `json:"id"`
	FileName       string    `json:"file_name,omitempty"`
	Link           string    `json:"link,omitempty"`
	UploadedByName string    `json:"uploaded_by_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func AttachmentConvert(rec dbmodels.TaskAttachment) AttachmentView {
	view := AttachmentView{
		ID:        rec.ID,
		FileName:  rec.FileName,
		Link:      rec.Link,
		CreatedAt: rec.CreatedAt,
	}
	if rec.UploadedBy != nil {
		view.UploadedByName = rec.UploadedBy.GetFullName()
	}
	return view
}

type ReviewView struct {
	Task        TaskView         `json:"task"`
	Original    *TaskView        `json:"original,omitempty"`
	Comment     string           `json:"comment,omitempty"`
	Attachments []AttachmentView `json:"attachments"`
	History     []HistoryView    `json:"history"`
}

type TaskDetailView struct {
	Task        TaskView         `json:"task"`
	History     []HistoryView    `json:"history"`
	Attachments []AttachmentView `json:"attachments"`
}

type BoardView struct {
	Urgent      []TaskView `json:"urgent"`
	Approvals   []TaskView `json:"approvals"`
	Reviews     []TaskView `json:"reviews"`
	SentReview  []TaskView `json:"sent_review"`
	UnderReview []TaskView `json:"under_review"`
	Rejected    []TaskView `json:"rejected"`
}
