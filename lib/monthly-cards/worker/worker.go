package monthlycardsworker

import (
	"context"
	"fmt"
	"time"

	"event-tracker-backend/db"
	departmentstore "event-tracker-backend/lib/dicts/department/store"
	eventcardstore "event-tracker-backend/lib/event-card/store"
	baseworker "event-tracker-backend/lib/utils/base-worker"
	"event-tracker-backend/models"
	dbmodels "event-tracker-backend/models/db"
)

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:        *baseworker.NewInstance("MonthlyCardsWorker", 30*time.Second, 12*time.Hour),
		cardStore:       eventcardstore.NewInstance(db.DB),
		departmentStore: departmentstore.NewInstance(db.DB),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	cardStore       eventcardstore.Provider
	departmentStore departmentstore.Provider
}

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

func monthCardTitle(department dbmodels.Department, month time.Month, year int) string {
	return fmt.Sprintf("Задачи отдела «%s» на %s %d", department.Name, monthNames[month-1], year)
}

// handle заводит служебную карточку отдела на текущий месяц,
// повторный запуск в том же месяце карточек не плодит
func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	departments, err := i.departmentStore.List()
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка отделов")
		return
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	for _, department := range departments {
		select {
		case <-ctx.Done():
			return
		default:
		}
		title := monthCardTitle(department, now.Month(), now.Year())
		exist, err := i.cardStore.GetByTitle(title)
		if err != nil {
			logger.WithError(err).Error("Ошибка проверки карточки отдела")
			continue
		}
		if exist != nil {
			continue
		}
		departmentID := department.ID
		rec := dbmodels.EventCard{
			Title:                   title,
			Description:             fmt.Sprintf("Ежемесячные задачи отдела «%s»", department.Name),
			PlanStatus:              models.PlanStatusApproved,
			StartDate:               monthStart,
			EndDate:                 &monthEnd,
			ResponsibleDepartmentID: &departmentID,
			IsFullyApproved:         true,
			Visible:                 true,
		}
		id, err := i.cardStore.Create(rec)
		if err != nil {
			logger.
				WithError(err).
				WithField("department_name", department.Name).
				Error("Ошибка создания месячной карточки отдела")
			continue
		}
		logger.
			WithField("card_id", id).
			WithField("department_name", department.Name).
			Info("Создана месячная карточка отдела")
	}
}
