package taskreviewhandler

import (
	"fmt"
	"regexp"
)

// legacy-маркер связи проверочной задачи с исходной, дублирует явную ссылку
// для старых клиентов, разбирающих описание задачи
var origMarkerRe = regexp.MustCompile(`\[orig_task_id\s*:\s*([0-9a-fA-F-]+)\]`)

func FormatOrigMarker(taskID string) string {
	return fmt.Sprintf("[orig_task_id:%s]", taskID)
}

// ParseOrigMarker возвращает идентификатор исходной задачи из описания,
// пустую строку если маркера нет
func ParseOrigMarker(description string) string {
	match := origMarkerRe.FindStringSubmatch(description)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
