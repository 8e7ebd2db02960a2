package dbmodels

type Notification struct {
	BaseModel
	EmployeeID string `gorm:"type:varchar(36);index"`
	Message    string
	Url        string `gorm:"type:varchar(512)"`
	IsRead     bool
}
