package notificationhandler

import (
	"event-tracker-backend/db"
	notificationstore "event-tracker-backend/lib/notification/store"
	notificationapimodels "event-tracker-backend/models/api/notification"
	dbmodels "event-tracker-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// Notify создаёт уведомление, ошибка логируется и не возвращается наружу
	Notify(employeeID, message, url string)
	List(employeeID string, filter notificationapimodels.NotificationFilter) (view notificationapimodels.NotificationListView, rowCount int64, err error)
	// Read помечает уведомление прочитанным и возвращает ссылку для перехода
	Read(employeeID, id string) (url string, hMsg string, err error)
	ReadAll(employeeID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: notificationstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: notificationstore.NewInstance(tx),
	}
}

type impl struct {
	store notificationstore.Provider
}

func (i impl) Notify(employeeID, message, url string) {
	if employeeID == "" {
		return
	}
	rec := dbmodels.Notification{
		EmployeeID: employeeID,
		Message:    message,
		Url:        url,
	}
	_, err := i.store.Create(rec)
	if err != nil {
		log.
			WithField("employee_id", employeeID).
			WithError(err).
			Error("Ошибка создания уведомления")
	}
}

func (i impl) List(employeeID string, filter notificationapimodels.NotificationFilter) (notificationapimodels.NotificationListView, int64, error) {
	view := notificationapimodels.NotificationListView{
		Items: []notificationapimodels.NotificationView{},
	}
	rowCount, err := i.store.ListCount(employeeID, filter)
	if err != nil {
		return view, 0, err
	}
	list, err := i.store.List(employeeID, filter)
	if err != nil {
		return view, 0, err
	}
	for _, rec := range list {
		view.Items = append(view.Items, notificationapimodels.NotificationConvert(rec))
	}
	view.UnreadCount, err = i.store.CountUnread(employeeID)
	if err != nil {
		return view, 0, err
	}
	return view, rowCount, nil
}

func (i impl) Read(employeeID, id string) (string, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", "", err
	}
	if rec == nil || rec.EmployeeID != employeeID {
		return "", "Уведомление не найдено", nil
	}
	err = i.store.MarkRead(employeeID, id)
	if err != nil {
		return "", "", err
	}
	return rec.Url, "", nil
}

func (i impl) ReadAll(employeeID string) error {
	return i.store.MarkAllRead(employeeID)
}
