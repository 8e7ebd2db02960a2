package initializers

import (
	"context"

	"event-tracker-backend/config"
	delegationhandler "event-tracker-backend/lib/delegation"
	departmentprovider "event-tracker-backend/lib/dicts/department"
	employeehandler "event-tracker-backend/lib/employee"
	eventcardhandler "event-tracker-backend/lib/event-card"
	xlsexport "event-tracker-backend/lib/export/xls"
	monthlycardsworker "event-tracker-backend/lib/monthly-cards/worker"
	notificationhandler "event-tracker-backend/lib/notification"
	planapprovalhandler "event-tracker-backend/lib/plan-approval"
	taskhandler "event-tracker-backend/lib/task"
	taskhistoryhandler "event-tracker-backend/lib/task-history"
	taskreviewhandler "event-tracker-backend/lib/task-review"

	"event-tracker-backend/fiberlog"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	notificationhandler.NewHandler()
	taskhistoryhandler.NewHandler()
	delegationhandler.NewHandler()
	employeehandler.NewHandler()
	departmentprovider.NewHandler()
	xlsexport.NewHandler()
	taskreviewhandler.NewHandler()
	taskhandler.NewHandler()
	eventcardhandler.NewHandler()
	planapprovalhandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	if config.Conf.Workers.MonthlyCardsEnabled != nil && *config.Conf.Workers.MonthlyCardsEnabled {
		// Задача создания месячных карточек отделов
		monthlycardsworker.StartWorker(ctx)
	}
}
