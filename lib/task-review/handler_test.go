package taskreviewhandler

import (
	"fmt"
	"testing"
	"time"

	"event-tracker-backend/models"
	taskapimodels "event-tracker-backend/models/api/task"
	dbmodels "event-tracker-backend/models/db"

	"github.com/stretchr/testify/require"
)

type auditRecord struct {
	TaskID  string
	Action  models.HistoryAction
	Comment string
}

type fakeHistory struct {
	records []auditRecord
}

func (f *fakeHistory) Audit(taskID, employeeID string, action models.HistoryAction, comment string) {
	f.records = append(f.records, auditRecord{TaskID: taskID, Action: action, Comment: comment})
}

func (f *fakeHistory) ListByTask(taskID string) ([]taskapimodels.HistoryView, error) {
	return []taskapimodels.HistoryView{}, nil
}

func (f *fakeHistory) actionsFor(taskID string) []models.HistoryAction {
	actions := []models.HistoryAction{}
	for _, rec := range f.records {
		if rec.TaskID == taskID {
			actions = append(actions, rec.Action)
		}
	}
	return actions
}

type fakeTaskStore struct {
	tasks   map[string]*dbmodels.Task
	nextID  int
	updates map[string]int
}

func newFakeTaskStore(tasks ...dbmodels.Task) *fakeTaskStore {
	store := &fakeTaskStore{
		tasks:   map[string]*dbmodels.Task{},
		updates: map[string]int{},
	}
	for idx := range tasks {
		rec := tasks[idx]
		store.tasks[rec.ID] = &rec
	}
	return store
}

func (f *fakeTaskStore) Create(rec dbmodels.Task) (string, error) {
	f.nextID++
	rec.ID = fmt.Sprintf("task-%d", f.nextID)
	rec.CreatedAt = time.Now()
	f.tasks[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeTaskStore) GetByID(id string) (*dbmodels.Task, error) {
	rec, exist := f.tasks[id]
	if !exist {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeTaskStore) Update(id string, updMap map[string]interface{}) error {
	rec, exist := f.tasks[id]
	if !exist {
		return nil
	}
	f.updates[id]++
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.TaskStatus)
	}
	if description, ok := updMap["description"]; ok {
		rec.Description = description.(string)
	}
	if comment, ok := updMap["review_comment"]; ok {
		rec.ReviewComment = comment.(string)
	}
	return nil
}

func (f *fakeTaskStore) ReplaceCC(taskID string, employees []dbmodels.Employee) error { return nil }

func (f *fakeTaskStore) Delete(id string) error { return nil }

func (f *fakeTaskStore) ListByCard(cardID string, statuses []models.TaskStatus) ([]dbmodels.Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) ListByCardForEmployee(cardID, employeeID string) ([]dbmodels.Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) ListByCardForDepartment(cardID, departmentID string) ([]dbmodels.Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) CountByCard(cardID string) (int64, int64, error) { return 0, 0, nil }

func (f *fakeTaskStore) ExistsOpenApproval(cardID, assigneeID string) (bool, error) {
	return false, nil
}

func (f *fakeTaskStore) LastReviewForOriginal(originalTaskID string) (*dbmodels.Task, error) {
	var last *dbmodels.Task
	for _, rec := range f.tasks {
		if rec.TaskType != models.TaskTypeReview {
			continue
		}
		if rec.OriginalTaskID == nil || *rec.OriginalTaskID != originalTaskID {
			continue
		}
		if last == nil || rec.CreatedAt.After(last.CreatedAt) {
			copied := *rec
			last = &copied
		}
	}
	return last, nil
}

func (f *fakeTaskStore) ListAssigned(employeeID string, statuses []models.TaskStatus, taskTypes []models.TaskType) ([]dbmodels.Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) ListCreated(employeeID string, statuses []models.TaskStatus) ([]dbmodels.Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) ListUrgent(employeeID string, dueBefore time.Time) ([]dbmodels.Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) reviewCountFor(originalTaskID string) int {
	count := 0
	for _, rec := range f.tasks {
		if rec.TaskType == models.TaskTypeReview && rec.OriginalTaskID != nil && *rec.OriginalTaskID == originalTaskID {
			count++
		}
	}
	return count
}

type fakeAttachmentStore struct {
	submissions []dbmodels.SubmissionEvent
	attachments []dbmodels.TaskAttachment
}

func (f *fakeAttachmentStore) CreateSubmission(rec dbmodels.SubmissionEvent) (string, error) {
	f.submissions = append(f.submissions, rec)
	return rec.ID, nil
}

func (f *fakeAttachmentStore) LastSubmissionByTask(taskID string) (*dbmodels.SubmissionEvent, error) {
	var last *dbmodels.SubmissionEvent
	for idx := range f.submissions {
		rec := f.submissions[idx]
		if rec.TaskID != taskID {
			continue
		}
		if last == nil || rec.CreatedAt.After(last.CreatedAt) {
			copied := rec
			last = &copied
		}
	}
	return last, nil
}

func (f *fakeAttachmentStore) Create(rec dbmodels.TaskAttachment) (string, error) {
	f.attachments = append(f.attachments, rec)
	return rec.ID, nil
}

func (f *fakeAttachmentStore) ListByTask(taskID string) ([]dbmodels.TaskAttachment, error) {
	list := []dbmodels.TaskAttachment{}
	for _, rec := range f.attachments {
		if rec.TaskID == taskID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeAttachmentStore) ListBySubmission(submissionEventID string) ([]dbmodels.TaskAttachment, error) {
	list := []dbmodels.TaskAttachment{}
	for _, rec := range f.attachments {
		if rec.SubmissionEventID != nil && *rec.SubmissionEventID == submissionEventID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func regularTask(id, createdByID, assigneeID string, status models.TaskStatus) dbmodels.Task {
	rec := dbmodels.Task{
		TaskType:           models.TaskTypeRegular,
		Priority:           models.PriorityNormal,
		Status:             status,
		Title:              "Подготовить площадку",
		CreatedByID:        createdByID,
		AssignedEmployeeID: &assigneeID,
	}
	rec.ID = id
	return rec
}

func reviewTask(id, originalID, authorID, reviewerID string, status models.TaskStatus) dbmodels.Task {
	origID := originalID
	rec := dbmodels.Task{
		TaskType:           models.TaskTypeReview,
		Priority:           models.PriorityNormal,
		Status:             status,
		Title:              "Проверка: Подготовить площадку",
		Description:        FormatOrigMarker(originalID),
		CreatedByID:        authorID,
		AssignedEmployeeID: &reviewerID,
		OriginalTaskID:     &origID,
	}
	rec.ID = id
	return rec
}

func submission(id, taskID, comment string, createdAt time.Time) dbmodels.SubmissionEvent {
	rec := dbmodels.SubmissionEvent{
		TaskID:  taskID,
		Comment: comment,
	}
	rec.ID = id
	rec.CreatedAt = createdAt
	return rec
}

func evidence(id, taskID, submissionID, fileName string) dbmodels.TaskAttachment {
	subID := submissionID
	rec := dbmodels.TaskAttachment{
		TaskID:            taskID,
		SubmissionEventID: &subID,
		FileName:          fileName,
	}
	rec.ID = id
	return rec
}

func newTestHandler(tasks *fakeTaskStore, attachments *fakeAttachmentStore, history *fakeHistory) impl {
	return impl{
		taskStore:       tasks,
		attachmentStore: attachments,
		history:         history,
	}
}

func TestReviewTake(t *testing.T) {
	t.Run(`fresh review moves both tasks check`, func(t *testing.T) {
		store := newFakeTaskStore(
			regularTask("orig-1", "emp-author", "emp-worker", models.TaskStatusSentForReview),
			reviewTask("rev-1", "orig-1", "emp-worker", "emp-author", models.TaskStatusNew),
		)
		history := &fakeHistory{}
		handler := newTestHandler(store, &fakeAttachmentStore{}, history)

		hMsg, err := handler.take("emp-author", "rev-1")
		require.NoError(t, err)
		require.Equal(t, "", hMsg)
		require.Equal(t, models.TaskStatusInProgress, store.tasks["rev-1"].Status)
		require.Equal(t, models.TaskStatusUnderReview, store.tasks["orig-1"].Status)
		require.Equal(t, []models.HistoryAction{models.HistoryTaken}, history.actionsFor("rev-1"))
		require.Equal(t, []models.HistoryAction{models.HistoryUnderReview}, history.actionsFor("orig-1"))
	})

	t.Run(`only reviewer takes check`, func(t *testing.T) {
		store := newFakeTaskStore(
			regularTask("orig-1", "emp-author", "emp-worker", models.TaskStatusSentForReview),
			reviewTask("rev-1", "orig-1", "emp-worker", "emp-author", models.TaskStatusNew),
		)
		handler := newTestHandler(store, &fakeAttachmentStore{}, &fakeHistory{})

		hMsg, err := handler.take("emp-worker", "rev-1")
		require.NoError(t, err)
		require.Equal(t, "Проверять выполнение может только постановщик задачи", hMsg)
		require.Equal(t, 0, store.updates["rev-1"])
		require.Equal(t, 0, store.updates["orig-1"])
	})

	t.Run(`already taken check`, func(t *testing.T) {
		store := newFakeTaskStore(
			regularTask("orig-1", "emp-author", "emp-worker", models.TaskStatusUnderReview),
			reviewTask("rev-1", "orig-1", "emp-worker", "emp-author", models.TaskStatusInProgress),
		)
		handler := newTestHandler(store, &fakeAttachmentStore{}, &fakeHistory{})

		hMsg, err := handler.take("emp-author", "rev-1")
		require.NoError(t, err)
		require.Equal(t, "Задача не ожидает проверки", hMsg)
		require.Equal(t, 0, store.updates["rev-1"])
	})

	t.Run(`missing original check`, func(t *testing.T) {
		store := newFakeTaskStore(
			reviewTask("rev-1", "orig-gone", "emp-worker", "emp-author", models.TaskStatusNew),
		)
		handler := newTestHandler(store, &fakeAttachmentStore{}, &fakeHistory{})

		hMsg, err := handler.take("emp-author", "rev-1")
		require.NoError(t, err)
		require.Equal(t, "Исходная задача не найдена", hMsg)
		require.Equal(t, 0, store.updates["rev-1"])
	})
}

func TestEnsureReview(t *testing.T) {
	t.Run(`open review reused check`, func(t *testing.T) {
		original := regularTask("orig-1", "emp-author", "emp-worker", models.TaskStatusSentForReview)
		store := newFakeTaskStore(
			original,
			reviewTask("rev-1", "orig-1", "emp-worker", "emp-author", models.TaskStatusInProgress),
		)
		history := &fakeHistory{}
		handler := newTestHandler(store, &fakeAttachmentStore{}, history)

		reviewID, reopened, err := handler.EnsureReview(original, "emp-worker", "исправлено по замечаниям")
		require.NoError(t, err)
		require.Equal(t, "rev-1", reviewID)
		require.Equal(t, true, reopened)
		require.Equal(t, 1, store.reviewCountFor("orig-1"))
		require.Equal(t, models.TaskStatusNew, store.tasks["rev-1"].Status)
		require.Contains(t, store.tasks["rev-1"].Description, FormatOrigMarker("orig-1"))
		require.Equal(t, []models.HistoryAction{models.HistoryExecutionUpdated}, history.actionsFor("rev-1"))
	})

	t.Run(`closed review not reused check`, func(t *testing.T) {
		original := regularTask("orig-1", "emp-author", "emp-worker", models.TaskStatusSentForReview)
		store := newFakeTaskStore(
			original,
			reviewTask("rev-1", "orig-1", "emp-worker", "emp-author", models.TaskStatusDone),
		)
		history := &fakeHistory{}
		handler := newTestHandler(store, &fakeAttachmentStore{}, history)

		reviewID, reopened, err := handler.EnsureReview(original, "emp-worker", "повторная отправка")
		require.NoError(t, err)
		require.NotEqual(t, "rev-1", reviewID)
		require.Equal(t, false, reopened)
		require.Equal(t, 2, store.reviewCountFor("orig-1"))
		created := store.tasks[reviewID]
		require.NotNil(t, created.AssignedEmployeeID)
		require.Equal(t, "emp-author", *created.AssignedEmployeeID)
		require.Equal(t, []models.HistoryAction{models.HistoryCreated}, history.actionsFor(reviewID))
	})

	t.Run(`first review check`, func(t *testing.T) {
		original := regularTask("orig-1", "emp-author", "emp-worker", models.TaskStatusSentForReview)
		store := newFakeTaskStore(original)
		handler := newTestHandler(store, &fakeAttachmentStore{}, &fakeHistory{})

		reviewID, reopened, err := handler.EnsureReview(original, "emp-worker", "готово")
		require.NoError(t, err)
		require.Equal(t, false, reopened)
		created := store.tasks[reviewID]
		require.Equal(t, models.TaskTypeReview, created.TaskType)
		require.NotNil(t, created.OriginalTaskID)
		require.Equal(t, "orig-1", *created.OriginalTaskID)
		require.Contains(t, created.Description, FormatOrigMarker("orig-1"))
	})
}

func TestReviewEvidenceScope(t *testing.T) {
	t.Run(`only last submission visible check`, func(t *testing.T) {
		store := newFakeTaskStore(
			regularTask("orig-1", "emp-author", "emp-worker", models.TaskStatusSentForReview),
			reviewTask("rev-1", "orig-1", "emp-worker", "emp-author", models.TaskStatusNew),
		)
		attachments := &fakeAttachmentStore{
			submissions: []dbmodels.SubmissionEvent{
				submission("sub-1", "orig-1", "первая версия", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)),
				submission("sub-2", "orig-1", "итоговая версия", time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)),
			},
			attachments: []dbmodels.TaskAttachment{
				evidence("att-1", "orig-1", "sub-1", "черновик.docx"),
				evidence("att-2", "orig-1", "sub-2", "итог.docx"),
			},
		}
		handler := newTestHandler(store, attachments, &fakeHistory{})

		view, hMsg, err := handler.Get("emp-author", "rev-1")
		require.NoError(t, err)
		require.Equal(t, "", hMsg)
		require.Equal(t, "итоговая версия", view.Comment)
		require.Equal(t, 1, len(view.Attachments))
		require.Equal(t, "att-2", view.Attachments[0].ID)
		require.Equal(t, "итог.docx", view.Attachments[0].FileName)
	})
}

func TestReviewDecisionGuards(t *testing.T) {
	t.Run(`approve without original check`, func(t *testing.T) {
		store := newFakeTaskStore(
			reviewTask("rev-1", "orig-gone", "emp-worker", "emp-author", models.TaskStatusInProgress),
		)
		handler := newTestHandler(store, &fakeAttachmentStore{}, &fakeHistory{})

		hMsg, err := handler.Approve("emp-author", "rev-1", taskapimodels.ReviewDecisionData{Comment: "принято"})
		require.NoError(t, err)
		require.Equal(t, "Исходная задача не найдена", hMsg)
		require.Equal(t, 0, store.updates["rev-1"])
		require.Equal(t, models.TaskStatusInProgress, store.tasks["rev-1"].Status)
	})

	t.Run(`reject without original check`, func(t *testing.T) {
		store := newFakeTaskStore(
			reviewTask("rev-1", "orig-gone", "emp-worker", "emp-author", models.TaskStatusInProgress),
		)
		handler := newTestHandler(store, &fakeAttachmentStore{}, &fakeHistory{})

		hMsg, err := handler.Reject("emp-author", "rev-1", taskapimodels.ReviewDecisionData{Comment: "переделать"})
		require.NoError(t, err)
		require.Equal(t, "Исходная задача не найдена", hMsg)
		require.Equal(t, 0, store.updates["rev-1"])
	})
}
