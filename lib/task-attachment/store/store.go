package taskattachmentstore

import (
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	CreateSubmission(rec dbmodels.SubmissionEvent) (id string, err error)
	LastSubmissionByTask(taskID string) (rec *dbmodels.SubmissionEvent, err error)

	Create(rec dbmodels.TaskAttachment) (id string, err error)
	ListByTask(taskID string) (list []dbmodels.TaskAttachment, err error)
	ListBySubmission(submissionEventID string) (list []dbmodels.TaskAttachment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateSubmission(rec dbmodels.SubmissionEvent) (id string, err error) {
	err = i.db.
		Omit("Employee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) LastSubmissionByTask(taskID string) (*dbmodels.SubmissionEvent, error) {
	rec := dbmodels.SubmissionEvent{}
	err := i.db.
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Preload("Employee").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Create(rec dbmodels.TaskAttachment) (id string, err error) {
	err = i.db.
		Omit("UploadedBy").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByTask(taskID string) (list []dbmodels.TaskAttachment, err error) {
	list = []dbmodels.TaskAttachment{}
	err = i.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Preload("UploadedBy").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListBySubmission(submissionEventID string) (list []dbmodels.TaskAttachment, err error) {
	list = []dbmodels.TaskAttachment{}
	err = i.db.
		Where("submission_event_id = ?", submissionEventID).
		Order("created_at ASC").
		Preload("UploadedBy").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
