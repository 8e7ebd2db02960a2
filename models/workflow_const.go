package models

type PlanStatus string

const (
	PlanStatusDraft    PlanStatus = "draft"
	PlanStatusPending  PlanStatus = "pending"
	PlanStatusRejected PlanStatus = "rejected"
	PlanStatusApproved PlanStatus = "approved"
)

var planStatusHumanName = map[PlanStatus]string{
	PlanStatusDraft:    "Черновик",
	PlanStatusPending:  "На согласовании",
	PlanStatusRejected: "Отклонён",
	PlanStatusApproved: "Утверждён",
}

func (s PlanStatus) ToHuman() string {
	if human, exist := planStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

type TaskStatus string

const (
	TaskStatusNew           TaskStatus = "new"
	TaskStatusInProgress    TaskStatus = "in_progress"
	TaskStatusSentForReview TaskStatus = "sent_for_review"
	TaskStatusUnderReview   TaskStatus = "under_review"
	TaskStatusDone          TaskStatus = "done"
	TaskStatusRejected      TaskStatus = "rejected"
)

var taskStatusHumanName = map[TaskStatus]string{
	TaskStatusNew:           "Новая",
	TaskStatusInProgress:    "В работе",
	TaskStatusSentForReview: "Отправлена на согласование",
	TaskStatusUnderReview:   "На рассмотрении",
	TaskStatusDone:          "Выполнена",
	TaskStatusRejected:      "Отклонена",
}

func (s TaskStatus) ToHuman() string {
	if human, exist := taskStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// допустимые переходы жизненного цикла задачи,
// rejected возвращается в цикл через повторное исполнение
var taskStatusTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusNew:           {TaskStatusInProgress, TaskStatusSentForReview, TaskStatusDone, TaskStatusRejected},
	TaskStatusInProgress:    {TaskStatusSentForReview, TaskStatusDone, TaskStatusRejected},
	TaskStatusSentForReview: {TaskStatusUnderReview, TaskStatusSentForReview, TaskStatusDone, TaskStatusRejected},
	TaskStatusUnderReview:   {TaskStatusDone, TaskStatusRejected},
	TaskStatusRejected:      {TaskStatusSentForReview, TaskStatusInProgress, TaskStatusDone},
	TaskStatusDone:          {},
}

func (s TaskStatus) IsAllowChange(to TaskStatus) bool {
	for _, allowed := range taskStatusTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

type TaskType string

const (
	TaskTypeRegular  TaskType = "regular"
	TaskTypeApproval TaskType = "approval"
	TaskTypeReview   TaskType = "review"
)

var taskTypeHumanName = map[TaskType]string{
	TaskTypeRegular:  "Обычная",
	TaskTypeApproval: "Согласование плана",
	TaskTypeReview:   "Проверка выполнения",
}

func (t TaskType) ToHuman() string {
	if human, exist := taskTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

type TaskPriority string

const (
	PriorityNormal TaskPriority = "normal"
	PriorityUrgent TaskPriority = "urgent"
)

var taskPriorityHumanName = map[TaskPriority]string{
	PriorityNormal: "Обычная",
	PriorityUrgent: "Срочная",
}

func (p TaskPriority) IsValid() bool {
	_, exist := taskPriorityHumanName[p]
	return exist
}

func (p TaskPriority) ToHuman() string {
	if human, exist := taskPriorityHumanName[p]; exist {
		return human
	}
	return string(p)
}

type HistoryAction string

const (
	HistoryCreated          HistoryAction = "created"
	HistoryAssigned         HistoryAction = "assigned"
	HistoryTaken            HistoryAction = "taken"
	HistorySentForReview    HistoryAction = "sent_for_review"
	HistoryExecutionUpdated HistoryAction = "execution_updated"
	HistoryUnderReview      HistoryAction = "under_review"
	HistoryInProgress       HistoryAction = "in_progress"
	HistoryApproved         HistoryAction = "approved"
	HistoryRejected         HistoryAction = "rejected"
	HistoryDelegated        HistoryAction = "delegated"
	HistoryDone             HistoryAction = "done"
	HistoryCompleted        HistoryAction = "completed"
)

var historyActionHumanName = map[HistoryAction]string{
	HistoryCreated:          "Создана",
	HistoryAssigned:         "Назначена",
	HistoryTaken:            "Взята в работу",
	HistorySentForReview:    "Отправлена на согласование",
	HistoryExecutionUpdated: "Исполнение обновлено",
	HistoryUnderReview:      "На рассмотрении",
	HistoryInProgress:       "В работе",
	HistoryApproved:         "Согласована",
	HistoryRejected:         "Отклонена",
	HistoryDelegated:        "Перенаправлена",
	HistoryDone:             "Завершена",
	HistoryCompleted:        "Выполнена",
}

func (a HistoryAction) ToHuman() string {
	if human, exist := historyActionHumanName[a]; exist {
		return human
	}
	return string(a)
}
