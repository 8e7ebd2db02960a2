package xlsexport

import (
	"bytes"
	"fmt"

	"event-tracker-backend/models"
	cardapimodels "event-tracker-backend/models/api/card"
	dbmodels "event-tracker-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportCardTasks(card dbmodels.EventCard, tasks []dbmodels.Task) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var taskHeaders = []string{"Задача", "Тип", "Статус", "Приоритет", "Исполнитель", "Отдел", "Постановщик", "Срок", "Дата выполнения"}

func (i impl) ExportCardTasks(card dbmodels.EventCard, tasks []dbmodels.Task) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, taskHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(tasks) != 0 {
		row, err = writeTaskData(f, sheet, tasks, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = writeProgressRow(f, sheet, card, tasks, row); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования итоговой строки в xlsx")
	}
	f.SetSheetName(sheet, "Задачи")
	return f.WriteToBuffer()
}

func writeProgressRow(f *excelize.File, sheet string, card dbmodels.EventCard, tasks []dbmodels.Task, row int) error {
	var total, done int64
	for _, item := range tasks {
		if item.TaskType != models.TaskTypeRegular {
			continue
		}
		total++
		if item.Status == models.TaskStatusDone {
			done++
		}
	}
	row += 2
	summary := fmt.Sprintf("«%s»: выполнено %d из %d (%.1f%%)", card.Title, done, total, cardapimodels.Progress(done, total))
	return writeColumn(f, sheet, 1, row, summary)
}

func writeTaskData(f *excelize.File, sheet string, tasks []dbmodels.Task, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(taskHeaders), len(tasks)+1); err != nil {
		return row, err
	}
	for _, item := range tasks {
		row++
		// "Задача"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Title); err != nil {
			return row, err
		}

		// "Тип"
		col++
		if err := writeColumn(f, sheet, col, row, item.TaskType.ToHuman()); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Приоритет"
		col++
		if err := writeColumn(f, sheet, col, row, item.Priority.ToHuman()); err != nil {
			return row, err
		}

		// "Исполнитель"
		col++
		if item.AssignedEmployee != nil {
			if err := writeColumn(f, sheet, col, row, item.AssignedEmployee.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Отдел"
		col++
		if item.AssignedDepartment != nil {
			if err := writeColumn(f, sheet, col, row, item.AssignedDepartment.Name); err != nil {
				return row, err
			}
		}

		// "Постановщик"
		col++
		if item.CreatedBy != nil {
			if err := writeColumn(f, sheet, col, row, item.CreatedBy.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Срок"
		col++
		if item.Deadline != nil {
			if err := writeColumn(f, sheet, col, row, item.Deadline.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Дата выполнения"
		col++
		if item.CompletedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.CompletedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
