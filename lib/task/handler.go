package taskhandler

import (
	"fmt"
	"time"

	"event-tracker-backend/db"
	delegationhandler "event-tracker-backend/lib/delegation"
	employeestore "event-tracker-backend/lib/employee/store"
	eventcardstore "event-tracker-backend/lib/event-card/store"
	notificationhandler "event-tracker-backend/lib/notification"
	taskattachmentstore "event-tracker-backend/lib/task-attachment/store"
	taskhistoryhandler "event-tracker-backend/lib/task-history"
	taskreviewhandler "event-tracker-backend/lib/task-review"
	taskstore "event-tracker-backend/lib/task/store"
	"event-tracker-backend/models"
	taskapimodels "event-tracker-backend/models/api/task"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// задачи с дедлайном ближе этого горизонта попадают в блок срочных
const urgentHorizonDays = 3

type Provider interface {
	CreateForCard(employeeID, cardID string, data taskapimodels.TaskData) (ids []string, hMsg string, err error)
	Take(employeeID, taskID string) (hMsg string, err error)
	Execute(employeeID, taskID string, data taskapimodels.ExecuteData) (hMsg string, err error)
	Redirect(employeeID, taskID string, data taskapimodels.RedirectData) (hMsg string, err error)
	Complete(employeeID, taskID string) (hMsg string, err error)
	GetByID(employeeID, taskID string) (view taskapimodels.TaskDetailView, hMsg string, err error)
	Board(employeeID string) (view taskapimodels.BoardView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           taskstore.NewInstance(db.DB),
		cardStore:       eventcardstore.NewInstance(db.DB),
		employeeStore:   employeestore.NewInstance(db.DB),
		attachmentStore: taskattachmentstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store:           taskstore.NewInstance(tx),
		cardStore:       eventcardstore.NewInstance(tx),
		employeeStore:   employeestore.NewInstance(tx),
		attachmentStore: taskattachmentstore.NewInstance(tx),
	}
}

type impl struct {
	store           taskstore.Provider
	cardStore       eventcardstore.Provider
	employeeStore   employeestore.Provider
	attachmentStore taskattachmentstore.Provider
}

func (i impl) getLogger(employeeID string) *log.Entry {
	return log.WithField("employee_id", employeeID)
}

// canAssign определяет, может ли сотрудник назначить задачу другому;
// себе задачу можно поставить всегда
func canAssign(creator dbmodels.Employee, target dbmodels.Employee) bool {
	if creator.ID == target.ID {
		return true
	}
	sameDepartment := creator.DepartmentID != nil && target.DepartmentID != nil &&
		*creator.DepartmentID == *target.DepartmentID
	return creator.Role.CanRedirectTo(target.Role, sameDepartment)
}

func (i impl) CreateForCard(employeeID, cardID string, data taskapimodels.TaskData) ([]string, string, error) {
	card, err := i.cardStore.GetByID(cardID)
	if err != nil {
		return nil, "", err
	}
	if card == nil {
		return nil, "Карточка мероприятия не найдена", nil
	}
	if !card.Visible {
		return nil, "Карточка недоступна: план мероприятия ещё не согласован", nil
	}
	creator, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return nil, "", err
	}
	if creator == nil {
		return nil, "Сотрудник не найден", nil
	}

	priority := models.TaskPriority(data.Priority)
	if priority == "" {
		priority = models.PriorityNormal
	}
	deadline := data.GetDeadline()

	ccList := make([]dbmodels.Employee, 0, len(data.CCIDs))
	for _, ccID := range data.CCIDs {
		ccEmployee, err := i.employeeStore.GetByID(ccID)
		if err != nil {
			return nil, "", err
		}
		if ccEmployee == nil {
			return nil, fmt.Sprintf("Сотрудник %v для ознакомления не найден", ccID), nil
		}
		ccList = append(ccList, *ccEmployee)
	}

	// по каждому адресату создаётся независимая копия задачи
	assignees := make([]dbmodels.Employee, 0, len(data.RecipientIDs))
	for _, recipientID := range data.RecipientIDs {
		recipient, err := i.delegated(recipientID)
		if err != nil {
			return nil, "", err
		}
		if recipient == nil {
			return nil, fmt.Sprintf("Получатель %v не найден в справочнике сотрудников", recipientID), nil
		}
		if !canAssign(*creator, *recipient) {
			return nil, fmt.Sprintf("Недостаточно прав для назначения задачи сотруднику %s", recipient.GetFullName()), nil
		}
		assignees = append(assignees, *recipient)
	}

	ids := []string{}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		history := taskhistoryhandler.NewHandlerWithTx(tx)
		for _, assignee := range assignees {
			assigneeID := assignee.ID
			task := dbmodels.Task{
				TaskType:           models.TaskTypeRegular,
				Priority:           priority,
				Status:             models.TaskStatusNew,
				CardID:             &cardID,
				Title:              data.Title,
				Description:        data.Description,
				CreatedByID:        employeeID,
				AssignedEmployeeID: &assigneeID,
				Deadline:           deadline,
				ExternalLink:       data.ExternalLink,
				AttachmentName:     data.AttachmentName,
			}
			id, err := txHandler.store.Create(task)
			if err != nil {
				return errors.Wrap(err, "Ошибка создания задачи")
			}
			ids = append(ids, id)
			if len(ccList) > 0 {
				err = txHandler.store.ReplaceCC(id, ccList)
				if err != nil {
					return err
				}
			}
			history.Audit(id, employeeID, models.HistoryCreated, "")
			history.Audit(id, employeeID, models.HistoryAssigned, assignee.GetFullName())
		}
		for _, departmentID := range data.RecipientDepartments {
			depID := departmentID
			task := dbmodels.Task{
				TaskType:             models.TaskTypeRegular,
				Priority:             priority,
				Status:               models.TaskStatusNew,
				CardID:               &cardID,
				Title:                data.Title,
				Description:          data.Description,
				CreatedByID:          employeeID,
				AssignedDepartmentID: &depID,
				Deadline:             deadline,
				ExternalLink:         data.ExternalLink,
				AttachmentName:       data.AttachmentName,
			}
			id, err := txHandler.store.Create(task)
			if err != nil {
				return errors.Wrap(err, "Ошибка создания задачи")
			}
			ids = append(ids, id)
			history.Audit(id, employeeID, models.HistoryCreated, "")
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	for idx, assignee := range assignees {
		notificationhandler.Instance.Notify(assignee.ID,
			fmt.Sprintf("Вам назначена задача «%s»", data.Title),
			fmt.Sprintf("/tasks/%s", ids[idx]))
	}
	for _, ccEmployee := range ccList {
		notificationhandler.Instance.Notify(ccEmployee.ID,
			fmt.Sprintf("Вас добавили для ознакомления с задачей «%s»", data.Title),
			fmt.Sprintf("/cards/%s", cardID))
	}
	i.getLogger(employeeID).
		WithField("card_id", cardID).
		WithField("task_count", len(ids)).
		Info("Созданы задачи по карточке")
	return ids, "", nil
}

// delegated возвращает действующего исполнителя с учётом замещения
func (i impl) delegated(employeeID string) (*dbmodels.Employee, error) {
	return delegationhandler.Instance.Resolve(employeeID)
}

func (i impl) Take(employeeID, taskID string) (string, error) {
	task, err := i.store.GetByID(taskID)
	if err != nil {
		return "", err
	}
	if task == nil {
		return "Задача не найдена", nil
	}
	if task.AssignedEmployeeID != nil && *task.AssignedEmployeeID != employeeID {
		return "Задача назначена другому сотруднику", nil
	}
	if task.AssignedEmployeeID == nil {
		// задачу отдела берёт любой сотрудник этого отдела
		employee, err := i.employeeStore.GetByID(employeeID)
		if err != nil {
			return "", err
		}
		if employee == nil {
			return "Сотрудник не найден", nil
		}
		if task.AssignedDepartmentID == nil || employee.DepartmentID == nil ||
			*task.AssignedDepartmentID != *employee.DepartmentID {
			return "Задача назначена другому отделу", nil
		}
	}
	if !task.Status.IsAllowChange(models.TaskStatusInProgress) {
		return "Задачу нельзя взять в работу в текущем статусе", nil
	}
	err = i.store.Update(taskID, map[string]interface{}{
		"status":               models.TaskStatusInProgress,
		"assigned_employee_id": employeeID,
	})
	if err != nil {
		return "", err
	}
	taskhistoryhandler.Instance.Audit(taskID, employeeID, models.HistoryTaken, "")
	i.getLogger(employeeID).
		WithField("task_id", taskID).
		Info("Задача взята в работу")
	return "", nil
}

func (i impl) Execute(employeeID, taskID string, data taskapimodels.ExecuteData) (string, error) {
	task, err := i.store.GetByID(taskID)
	if err != nil {
		return "", err
	}
	if task == nil || task.TaskType != models.TaskTypeRegular {
		return "Задача не найдена", nil
	}
	if task.AssignedEmployeeID == nil || *task.AssignedEmployeeID != employeeID {
		return "Отчитаться о выполнении может только исполнитель задачи", nil
	}
	if !task.Status.IsAllowChange(models.TaskStatusSentForReview) {
		return "Задачу нельзя отправить на проверку в текущем статусе", nil
	}
	reviewTaskID := ""
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		history := taskhistoryhandler.NewHandlerWithTx(tx)
		err := txHandler.store.Update(taskID, map[string]interface{}{
			"status": models.TaskStatusSentForReview,
		})
		if err != nil {
			return err
		}
		submission := dbmodels.SubmissionEvent{
			TaskID:     taskID,
			EmployeeID: &employeeID,
			Comment:    data.Comment,
		}
		submissionID, err := txHandler.attachmentStore.CreateSubmission(submission)
		if err != nil {
			return errors.Wrap(err, "Ошибка сохранения отчёта о выполнении")
		}
		if data.AttachmentName != "" {
			attachment := dbmodels.TaskAttachment{
				TaskID:            taskID,
				SubmissionEventID: &submissionID,
				FileName:          data.AttachmentName,
				UploadedByID:      &employeeID,
			}
			_, err = txHandler.attachmentStore.Create(attachment)
			if err != nil {
				return err
			}
		}
		if data.Link != "" {
			attachment := dbmodels.TaskAttachment{
				TaskID:            taskID,
				SubmissionEventID: &submissionID,
				Link:              data.Link,
				UploadedByID:      &employeeID,
			}
			_, err = txHandler.attachmentStore.Create(attachment)
			if err != nil {
				return err
			}
		}
		history.Audit(taskID, employeeID, models.HistorySentForReview, data.Comment)
		reviewTaskID, _, err = taskreviewhandler.NewHandlerWithTx(tx).EnsureReview(*task, employeeID, data.Comment)
		return err
	})
	if err != nil {
		return "", err
	}
	notificationhandler.Instance.Notify(task.CreatedByID,
		fmt.Sprintf("Задача «%s» отправлена на проверку", task.Title),
		fmt.Sprintf("/tasks/%s", reviewTaskID))
	i.getLogger(employeeID).
		WithField("task_id", taskID).
		Info("Задача отправлена на проверку")
	return "", nil
}

func (i impl) Redirect(employeeID, taskID string, data taskapimodels.RedirectData) (string, error) {
	task, err := i.store.GetByID(taskID)
	if err != nil {
		return "", err
	}
	if task == nil {
		return "Задача не найдена", nil
	}
	if task.Status == models.TaskStatusDone {
		return "Выполненную задачу нельзя перенаправить", nil
	}
	actor, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return "", err
	}
	if actor == nil {
		return "Сотрудник не найден", nil
	}
	isAssignee := task.AssignedEmployeeID != nil && *task.AssignedEmployeeID == employeeID
	if !isAssignee && task.CreatedByID != employeeID && !actor.Role.Can(models.ActionRedirectOthers) {
		return "Недостаточно прав для перенаправления задачи", nil
	}
	target, err := i.delegated(data.EmployeeID)
	if err != nil {
		return "", err
	}
	if target == nil {
		return "Сотрудник для перенаправления не найден", nil
	}
	if target.ID == employeeID {
		return "Нельзя перенаправить задачу самому себе", nil
	}
	if !canAssign(*actor, *target) {
		return fmt.Sprintf("Недостаточно прав для перенаправления задачи сотруднику %s", target.GetFullName()), nil
	}
	err = i.store.Update(taskID, map[string]interface{}{
		"assigned_employee_id": target.ID,
		"status":               models.TaskStatusNew,
	})
	if err != nil {
		return "", err
	}
	taskhistoryhandler.Instance.Audit(taskID, employeeID, models.HistoryDelegated, target.GetFullName())
	notificationhandler.Instance.Notify(target.ID,
		fmt.Sprintf("Вам перенаправлена задача «%s»", task.Title),
		fmt.Sprintf("/tasks/%s", taskID))
	i.getLogger(employeeID).
		WithField("task_id", taskID).
		WithField("target_id", target.ID).
		Info("Задача перенаправлена")
	return "", nil
}

func (i impl) Complete(employeeID, taskID string) (string, error) {
	task, err := i.store.GetByID(taskID)
	if err != nil {
		return "", err
	}
	if task == nil {
		return "Задача не найдена", nil
	}
	if task.CreatedByID != employeeID {
		return "Закрыть задачу без проверки может только постановщик", nil
	}
	if !task.Status.IsAllowChange(models.TaskStatusDone) {
		return "Задачу нельзя закрыть в текущем статусе", nil
	}
	now := time.Now()
	err = i.store.Update(taskID, map[string]interface{}{
		"status":       models.TaskStatusDone,
		"completed_at": now,
	})
	if err != nil {
		return "", err
	}
	taskhistoryhandler.Instance.Audit(taskID, employeeID, models.HistoryCompleted, "")
	if task.AssignedEmployeeID != nil {
		notificationhandler.Instance.Notify(*task.AssignedEmployeeID,
			fmt.Sprintf("Задача «%s» закрыта постановщиком", task.Title),
			fmt.Sprintf("/tasks/%s", taskID))
	}
	return "", nil
}

func (i impl) GetByID(employeeID, taskID string) (taskapimodels.TaskDetailView, string, error) {
	view := taskapimodels.TaskDetailView{
		History:     []taskapimodels.HistoryView{},
		Attachments: []taskapimodels.AttachmentView{},
	}
	task, err := i.store.GetByID(taskID)
	if err != nil {
		return view, "", err
	}
	if task == nil {
		return view, "Задача не найдена", nil
	}
	hMsg, err := i.checkAccess(employeeID, *task)
	if err != nil || hMsg != "" {
		return view, hMsg, err
	}
	view.Task = taskapimodels.TaskConvert(*task)
	view.History, err = taskhistoryhandler.Instance.ListByTask(taskID)
	if err != nil {
		return view, "", err
	}
	attachments, err := i.attachmentStore.ListByTask(taskID)
	if err != nil {
		return view, "", err
	}
	for _, rec := range attachments {
		view.Attachments = append(view.Attachments, taskapimodels.AttachmentConvert(rec))
	}
	return view, "", nil
}

func (i impl) checkAccess(employeeID string, task dbmodels.Task) (string, error) {
	if task.CreatedByID == employeeID {
		return "", nil
	}
	if task.AssignedEmployeeID != nil && *task.AssignedEmployeeID == employeeID {
		return "", nil
	}
	for _, recipient := range task.CC {
		if recipient.ID == employeeID {
			return "", nil
		}
	}
	viewer, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return "", err
	}
	if viewer == nil {
		return "Сотрудник не найден", nil
	}
	if viewer.Role.Can(models.ActionViewAnyTask) {
		return "", nil
	}
	if task.AssignedDepartmentID != nil && viewer.DepartmentID != nil &&
		*task.AssignedDepartmentID == *viewer.DepartmentID {
		return "", nil
	}
	return "Нет доступа к задаче", nil
}

func (i impl) Board(employeeID string) (taskapimodels.BoardView, error) {
	view := taskapimodels.BoardView{
		Urgent:      []taskapimodels.TaskView{},
		Approvals:   []taskapimodels.TaskView{},
		Reviews:     []taskapimodels.TaskView{},
		SentReview:  []taskapimodels.TaskView{},
		UnderReview: []taskapimodels.TaskView{},
		Rejected:    []taskapimodels.TaskView{},
	}
	horizon := time.Now().AddDate(0, 0, urgentHorizonDays)
	urgent, err := i.store.ListUrgent(employeeID, horizon)
	if err != nil {
		return view, err
	}
	view.Urgent = convertList(urgent)

	openStatuses := []models.TaskStatus{models.TaskStatusNew, models.TaskStatusInProgress}
	approvals, err := i.store.ListAssigned(employeeID, openStatuses, []models.TaskType{models.TaskTypeApproval})
	if err != nil {
		return view, err
	}
	view.Approvals = convertList(approvals)

	reviews, err := i.store.ListAssigned(employeeID, []models.TaskStatus{models.TaskStatusNew, models.TaskStatusInProgress, models.TaskStatusUnderReview}, []models.TaskType{models.TaskTypeReview})
	if err != nil {
		return view, err
	}
	view.Reviews = convertList(reviews)

	sent, err := i.store.ListAssigned(employeeID, []models.TaskStatus{models.TaskStatusSentForReview}, []models.TaskType{models.TaskTypeRegular})
	if err != nil {
		return view, err
	}
	view.SentReview = convertList(sent)

	underReview, err := i.store.ListCreated(employeeID, []models.TaskStatus{models.TaskStatusUnderReview, models.TaskStatusSentForReview})
	if err != nil {
		return view, err
	}
	view.UnderReview = convertList(underReview)

	rejected, err := i.store.ListAssigned(employeeID, []models.TaskStatus{models.TaskStatusRejected}, []models.TaskType{models.TaskTypeRegular})
	if err != nil {
		return view, err
	}
	view.Rejected = convertList(rejected)
	return view, nil
}

func convertList(list []dbmodels.Task) []taskapimodels.TaskView {
	result := make([]taskapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, taskapimodels.TaskConvert(rec))
	}
	return result
}
