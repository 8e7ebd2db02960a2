package dbmodels

// SubmissionEvent - факт отправки исполнения на проверку;
// вложения ссылаются на него напрямую, без вывода по отметкам времени
type SubmissionEvent struct {
	BaseModel
	TaskID     string    `gorm:"type:varchar(36);index"`
	EmployeeID *string   `gorm:"type:varchar(36)"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL"`
	Comment    string
}

type TaskAttachment struct {
	BaseModel
	TaskID            string  `gorm:"type:varchar(36);index"`
	SubmissionEventID *string `gorm:"type:varchar(36);index"`

	// файл хранится во внешнем сервисе, здесь только имя либо ссылка
	FileName string `gorm:"type:varchar(512)"`
	Link     string `gorm:"type:varchar(512)"`

	UploadedByID *string   `gorm:"type:varchar(36)"`
	UploadedBy   *Employee `gorm:"foreignKey:UploadedByID;constraint:OnDelete:SET NULL"`
}
