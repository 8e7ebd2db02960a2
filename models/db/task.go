package dbmodels

import (
	"time"

	"event-tracker-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Task struct {
	BaseModel
	TaskType models.TaskType     `gorm:"type:varchar(20)"`
	Priority models.TaskPriority `gorm:"type:varchar(10)"`
	Status   models.TaskStatus   `gorm:"type:varchar(20)"`

	CardID *string    `gorm:"type:varchar(36);index"`
	Card   *EventCard `gorm:"foreignKey:CardID"`

	Title       string `gorm:"type:varchar(255)"`
	Description string

	CreatedByID string    `gorm:"type:varchar(36)"`
	CreatedBy   *Employee `gorm:"foreignKey:CreatedByID"`

	AssignedEmployeeID   *string     `gorm:"type:varchar(36);index"`
	AssignedEmployee     *Employee   `gorm:"foreignKey:AssignedEmployeeID;constraint:OnDelete:SET NULL"`
	AssignedDepartmentID *string     `gorm:"type:varchar(36)"`
	AssignedDepartment   *Department `gorm:"foreignKey:AssignedDepartmentID;constraint:OnDelete:SET NULL"`

	// адресаты: по каждому создаётся отдельная копия задачи
	Recipients []Employee `gorm:"many2many:task_recipients"`
	// для ознакомления, без прав на действия
	CC []Employee `gorm:"many2many:task_cc"`

	Deadline *time.Time `gorm:"type:date"`
	DueDate  *time.Time `gorm:"type:date"`

	ExternalLink   string `gorm:"type:varchar(512)"`
	AttachmentName string `gorm:"type:varchar(512)"`

	ReviewComment string
	CompletedAt   *time.Time

	// для review-задач: явная ссылка на исходную задачу
	// (legacy-маркер [orig_task_id:<id>] в описании сохраняется для совместимости)
	OriginalTaskID *string `gorm:"type:varchar(36);index"`
}

func (t *Task) AfterDelete(tx *gorm.DB) (err error) {
	if t.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("task_id = ?", t.ID).Delete(&TaskHistory{})
	tx.Clauses(clause.Returning{}).Where("task_id = ?", t.ID).Delete(&TaskAttachment{})
	tx.Clauses(clause.Returning{}).Where("task_id = ?", t.ID).Delete(&SubmissionEvent{})
	return
}
