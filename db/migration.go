package db

import (
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.EventCard{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EventCard")
	}
	if err := DB.AutoMigrate(&dbmodels.CardApproverOrder{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CardApproverOrder")
	}
	if err := DB.AutoMigrate(&dbmodels.Task{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Task")
	}
	if err := DB.AutoMigrate(&dbmodels.TaskHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.SubmissionEvent{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SubmissionEvent")
	}
	if err := DB.AutoMigrate(&dbmodels.TaskAttachment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskAttachment")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Notification")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
