package eventcardhandler

import (
	"bytes"
	"fmt"
	"time"

	"event-tracker-backend/db"
	delegationhandler "event-tracker-backend/lib/delegation"
	departmentstore "event-tracker-backend/lib/dicts/department/store"
	employeestore "event-tracker-backend/lib/employee/store"
	cardapproverstore "event-tracker-backend/lib/event-card/approver-store"
	eventcardstore "event-tracker-backend/lib/event-card/store"
	xlsexport "event-tracker-backend/lib/export/xls"
	notificationhandler "event-tracker-backend/lib/notification"
	taskhistoryhandler "event-tracker-backend/lib/task-history"
	taskstore "event-tracker-backend/lib/task/store"
	"event-tracker-backend/models"
	cardapimodels "event-tracker-backend/models/api/card"
	taskapimodels "event-tracker-backend/models/api/task"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(employeeID string, data cardapimodels.CardData) (id string, hMsg string, err error)
	GetByID(employeeID, id string, tasksFilter cardapimodels.CardTasksFilter) (view cardapimodels.CardView, tasks []taskapimodels.TaskView, hMsg string, err error)
	List(employeeID string) (list []cardapimodels.CardView, err error)
	ResubmitPlan(employeeID, id string, data cardapimodels.PlanResubmitData) (hMsg string, err error)
	Export(employeeID, id string) (buf *bytes.Buffer, fileName string, hMsg string, err error)
	Delete(employeeID, id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           eventcardstore.NewInstance(db.DB),
		approverStore:   cardapproverstore.NewInstance(db.DB),
		taskStore:       taskstore.NewInstance(db.DB),
		employeeStore:   employeestore.NewInstance(db.DB),
		departmentStore: departmentstore.NewInstance(db.DB),
		history:         taskhistoryhandler.NewHandlerWithTx(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store:           eventcardstore.NewInstance(tx),
		approverStore:   cardapproverstore.NewInstance(tx),
		taskStore:       taskstore.NewInstance(tx),
		employeeStore:   employeestore.NewInstance(tx),
		departmentStore: departmentstore.NewInstance(tx),
		history:         taskhistoryhandler.NewHandlerWithTx(tx),
	}
}

type impl struct {
	store           eventcardstore.Provider
	approverStore   cardapproverstore.Provider
	taskStore       taskstore.Provider
	employeeStore   employeestore.Provider
	departmentStore departmentstore.Provider
	history         taskhistoryhandler.Provider
}

func (i impl) getLogger(employeeID string) *log.Entry {
	return log.WithField("employee_id", employeeID)
}

func (i impl) Create(employeeID string, data cardapimodels.CardData) (id string, hMsg string, err error) {
	author, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return "", "", err
	}
	if author == nil {
		return "", "Сотрудник не найден", nil
	}
	if !author.Role.Can(models.ActionCreateCard) {
		return "", "Недостаточно прав для создания карточки мероприятия", nil
	}
	hMsg, err = i.checkApprovers(data)
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	if data.ResponsibleDepartmentID != "" {
		department, err := i.departmentStore.GetByID(data.ResponsibleDepartmentID)
		if err != nil {
			return "", "", err
		}
		if department == nil {
			return "", "Ответственный отдел не найден", nil
		}
	}
	sharedDepartments := make([]dbmodels.Department, 0, len(data.SharedDepartmentIDs))
	for _, departmentID := range data.SharedDepartmentIDs {
		department, err := i.departmentStore.GetByID(departmentID)
		if err != nil {
			return "", "", err
		}
		if department == nil {
			return "", "Отдел-соисполнитель не найден", nil
		}
		sharedDepartments = append(sharedDepartments, *department)
	}
	startDate, _ := time.Parse("2006-01-02", data.StartDate)
	rec := dbmodels.EventCard{
		Title:        data.Title,
		Description:  data.Description,
		HasPlan:      data.HasPlan,
		PlanFileName: data.PlanFileName,
		StartDate:    startDate,
		CreatedByID:  &employeeID,
	}
	if data.EndDate != "" {
		endDate, _ := time.Parse("2006-01-02", data.EndDate)
		rec.EndDate = &endDate
	}
	if data.ResponsibleDepartmentID != "" {
		rec.ResponsibleDepartmentID = &data.ResponsibleDepartmentID
	}
	if data.FinalApproverID != "" {
		rec.FinalApproverID = &data.FinalApproverID
	}

	// карточка без плана активна сразу, с планом - после согласования
	needApproval := data.HasPlan && data.PlanFileName != "" && (len(data.ApproverIDs) > 0 || data.FinalApproverID != "")
	if needApproval {
		now := time.Now()
		rec.PlanStatus = models.PlanStatusPending
		rec.PlanSubmittedAt = &now
		rec.Visible = false
	} else {
		rec.PlanStatus = models.PlanStatusApproved
		rec.IsFullyApproved = true
		rec.Visible = true
	}

	var approvalTaskID, approvalAssigneeID string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		id, err = txHandler.store.Create(rec)
		if err != nil {
			return errors.Wrap(err, "Ошибка сохранения карточки мероприятия")
		}
		err = txHandler.approverStore.ReplaceForCard(id, data.ApproverIDs)
		if err != nil {
			return errors.Wrap(err, "Ошибка сохранения очереди согласующих")
		}
		if len(sharedDepartments) > 0 {
			err = txHandler.store.ReplaceSharedDepartments(id, sharedDepartments)
			if err != nil {
				return errors.Wrap(err, "Ошибка сохранения отделов-соисполнителей")
			}
		}
		if needApproval {
			approvalTaskID, approvalAssigneeID, err = txHandler.startChain(id, rec.Title, employeeID, data.ApproverIDs, data.FinalApproverID)
			return err
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	if approvalTaskID != "" {
		notificationhandler.Instance.Notify(approvalAssigneeID,
			fmt.Sprintf("Вам на согласование поступил план мероприятия «%s»", rec.Title),
			fmt.Sprintf("/tasks/%s", approvalTaskID))
	}
	i.getLogger(employeeID).
		WithField("card_id", id).
		WithField("card_title", rec.Title).
		Info("Создана карточка мероприятия")
	return id, "", nil
}

// startChain ставит первую задачу согласования и двигает указатель в начало,
// уведомление согласующему отправляет вызывающий после фиксации транзакции
func (i impl) startChain(cardID, cardTitle, authorID string, approverIDs []string, finalApproverID string) (taskID, resolvedAssigneeID string, err error) {
	assigneeID := finalApproverID
	taskTitle := fmt.Sprintf("Согласование плана мероприятия «%s»", cardTitle)
	if len(approverIDs) > 0 {
		assigneeID = approverIDs[0]
	}
	resolved, err := delegationhandler.Instance.Resolve(assigneeID)
	if err != nil {
		return "", "", err
	}
	if resolved != nil {
		assigneeID = resolved.ID
	}
	task := dbmodels.Task{
		TaskType:           models.TaskTypeApproval,
		Priority:           models.PriorityNormal,
		Status:             models.TaskStatusNew,
		CardID:             &cardID,
		Title:              taskTitle,
		CreatedByID:        authorID,
		AssignedEmployeeID: &assigneeID,
	}
	taskID, err = i.taskStore.Create(task)
	if err != nil {
		return "", "", errors.Wrap(err, "Ошибка создания задачи согласования")
	}
	i.history.Audit(taskID, authorID, models.HistoryCreated, taskTitle)
	return taskID, assigneeID, nil
}

func (i impl) GetByID(employeeID, id string, tasksFilter cardapimodels.CardTasksFilter) (cardapimodels.CardView, []taskapimodels.TaskView, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return cardapimodels.CardView{}, nil, "", err
	}
	if rec == nil {
		return cardapimodels.CardView{}, nil, "Карточка мероприятия не найдена", nil
	}
	viewer, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return cardapimodels.CardView{}, nil, "", err
	}
	if viewer == nil {
		return cardapimodels.CardView{}, nil, "Сотрудник не найден", nil
	}
	view := cardapimodels.CardConvert(*rec)
	approvers, err := i.approverStore.ListByCard(id)
	if err != nil {
		return cardapimodels.CardView{}, nil, "", err
	}
	for _, approver := range approvers {
		view.Approvers = append(view.Approvers, cardapimodels.ApproverConvert(approver))
	}
	total, done, err := i.taskStore.CountByCard(id)
	if err != nil {
		return cardapimodels.CardView{}, nil, "", err
	}
	view.OpenCount = total - done
	view.DoneCount = done
	view.Progress = cardapimodels.Progress(done, total)

	tasks, err := i.listCardTasks(id, *viewer, tasksFilter)
	if err != nil {
		return cardapimodels.CardView{}, nil, "", err
	}
	return view, tasks, "", nil
}

func (i impl) listCardTasks(cardID string, viewer dbmodels.Employee, filter cardapimodels.CardTasksFilter) ([]taskapimodels.TaskView, error) {
	var (
		list []dbmodels.Task
		err  error
	)
	switch filter.Owner {
	case "mine":
		list, err = i.taskStore.ListByCardForEmployee(cardID, viewer.ID)
	case "department":
		if viewer.DepartmentID == nil {
			list = []dbmodels.Task{}
		} else {
			list, err = i.taskStore.ListByCardForDepartment(cardID, *viewer.DepartmentID)
		}
	default:
		list, err = i.taskStore.ListByCard(cardID, filterStatuses(filter.Filter))
	}
	if err != nil {
		return nil, err
	}
	result := make([]taskapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, taskapimodels.TaskConvert(rec))
	}
	return result, nil
}

func filterStatuses(filter string) []models.TaskStatus {
	switch filter {
	case "new":
		return []models.TaskStatus{models.TaskStatusNew}
	case "in_progress":
		return []models.TaskStatus{models.TaskStatusInProgress}
	case "review":
		return []models.TaskStatus{models.TaskStatusSentForReview, models.TaskStatusUnderReview}
	case "done":
		return []models.TaskStatus{models.TaskStatusDone}
	default:
		return nil
	}
}

func (i impl) List(employeeID string) ([]cardapimodels.CardView, error) {
	viewer, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, errors.New("сотрудник не найден")
	}
	var list []dbmodels.EventCard
	if viewer.Role.Can(models.ActionViewAllCards) {
		list, err = i.store.List()
	} else {
		list, err = i.store.ListVisible()
	}
	if err != nil {
		return nil, err
	}
	// автор видит и свои несогласованные карточки
	if !viewer.Role.Can(models.ActionViewAllCards) {
		own, err := i.store.ListByCreator(employeeID)
		if err != nil {
			return nil, err
		}
		seen := map[string]bool{}
		for _, rec := range list {
			seen[rec.ID] = true
		}
		for _, rec := range own {
			if !seen[rec.ID] {
				list = append(list, rec)
			}
		}
	}
	result := make([]cardapimodels.CardView, 0, len(list))
	for _, rec := range list {
		view := cardapimodels.CardConvert(rec)
		total, done, err := i.taskStore.CountByCard(rec.ID)
		if err != nil {
			return nil, err
		}
		view.OpenCount = total - done
		view.DoneCount = done
		view.Progress = cardapimodels.Progress(done, total)
		result = append(result, view)
	}
	return result, nil
}

func (i impl) ResubmitPlan(employeeID, id string, data cardapimodels.PlanResubmitData) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Карточка мероприятия не найдена", nil
	}
	if !rec.IsCreatedBy(employeeID) {
		return "Повторно отправить план может только автор карточки", nil
	}
	if rec.PlanStatus != models.PlanStatusRejected {
		return "План не был отклонён, повторная отправка не требуется", nil
	}
	approvers, err := i.approverStore.ListByCard(id)
	if err != nil {
		return "", err
	}
	approverIDs := make([]string, 0, len(approvers))
	for _, approver := range approvers {
		approverIDs = append(approverIDs, approver.EmployeeID)
	}
	finalApproverID := ""
	if rec.FinalApproverID != nil {
		finalApproverID = *rec.FinalApproverID
	}
	if len(approverIDs) == 0 && finalApproverID == "" {
		return "Для плана не настроен процесс согласования", nil
	}
	now := time.Now()
	var approvalTaskID, approvalAssigneeID string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		err := txHandler.store.Update(id, map[string]interface{}{
			"plan_file_name":         data.PlanFileName,
			"plan_status":            models.PlanStatusPending,
			"plan_submitted_at":      now,
			"plan_rejected_reason":   "",
			"current_approver_index": 0,
			"is_fully_approved":      false,
			"visible":                false,
		})
		if err != nil {
			return err
		}
		approvalTaskID, approvalAssigneeID, err = txHandler.startChain(id, rec.Title, employeeID, approverIDs, finalApproverID)
		return err
	})
	if err != nil {
		return "", err
	}
	if approvalTaskID != "" {
		notificationhandler.Instance.Notify(approvalAssigneeID,
			fmt.Sprintf("Вам на согласование поступил план мероприятия «%s»", rec.Title),
			fmt.Sprintf("/tasks/%s", approvalTaskID))
	}
	i.getLogger(employeeID).
		WithField("card_id", id).
		Info("План отправлен на повторное согласование")
	return "", nil
}

func (i impl) Export(employeeID, id string) (*bytes.Buffer, string, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, "", "", err
	}
	if rec == nil {
		return nil, "", "Карточка мероприятия не найдена", nil
	}
	viewer, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return nil, "", "", err
	}
	if viewer == nil {
		return nil, "", "Сотрудник не найден", nil
	}
	if !viewer.Role.Can(models.ActionExportCard) && !rec.IsCreatedBy(employeeID) {
		return nil, "", "Недостаточно прав для выгрузки отчёта", nil
	}
	tasks, err := i.taskStore.ListByCard(id, nil)
	if err != nil {
		return nil, "", "", err
	}
	buf, err := xlsexport.Instance.ExportCardTasks(*rec, tasks)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "Ошибка формирования отчёта по карточке")
	}
	fileName := fmt.Sprintf("card_report_%s.xlsx", time.Now().Format("02012006"))
	i.getLogger(employeeID).
		WithField("card_id", id).
		Info("Сформирован отчёт по карточке")
	return buf, fileName, "", nil
}

func (i impl) Delete(employeeID, id string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Карточка мероприятия не найдена", nil
	}
	author, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return "", err
	}
	if author == nil {
		return "Сотрудник не найден", nil
	}
	if !rec.IsCreatedBy(employeeID) && !author.Role.Can(models.ActionViewAllCards) {
		return "Недостаточно прав для удаления карточки", nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		// очередь согласующих уходит вместе с карточкой
		err := txHandler.approverStore.DeleteByCard(id)
		if err != nil {
			return err
		}
		return txHandler.store.Delete(id)
	})
	if err != nil {
		return "", err
	}
	i.getLogger(employeeID).
		WithField("card_id", id).
		Info("Удалена карточка мероприятия")
	return "", nil
}

func (i impl) checkApprovers(data cardapimodels.CardData) (string, error) {
	seen := map[string]bool{}
	for _, approverID := range data.ApproverIDs {
		if seen[approverID] {
			return "Сотрудник уже указан на ранних этапах согласования", nil
		}
		seen[approverID] = true
		approver, err := i.employeeStore.GetByID(approverID)
		if err != nil {
			return "", err
		}
		if approver == nil {
			return fmt.Sprintf("Согласующий %v не найден в справочнике сотрудников", approverID), nil
		}
	}
	if data.FinalApproverID != "" {
		finalApprover, err := i.employeeStore.GetByID(data.FinalApproverID)
		if err != nil {
			return "", err
		}
		if finalApprover == nil {
			return "Утверждающий не найден в справочнике сотрудников", nil
		}
		if !finalApprover.Role.CanBeFinalApprover() {
			return "Утверждать план может только директор или заместитель", nil
		}
	}
	return "", nil
}
