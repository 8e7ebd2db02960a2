package taskreviewhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrigMarker(t *testing.T) {
	t.Run(`format and parse roundtrip check`, func(t *testing.T) {
		taskID := "3f2a1b9c-0d4e-4f5a-8b6c-7d8e9f0a1b2c"
		marker := FormatOrigMarker(taskID)
		require.Equal(t, "[orig_task_id:3f2a1b9c-0d4e-4f5a-8b6c-7d8e9f0a1b2c]", marker)
		require.Equal(t, taskID, ParseOrigMarker(marker))
	})

	t.Run(`marker inside description check`, func(t *testing.T) {
		description := "Проверка выполнения задачи «Согласовать площадку»\n[orig_task_id: abc-123]\nкомментарий исполнителя"
		require.Equal(t, "abc-123", ParseOrigMarker(description))
	})

	t.Run(`no marker check`, func(t *testing.T) {
		require.Equal(t, "", ParseOrigMarker("обычное описание без маркера"))
		require.Equal(t, "", ParseOrigMarker(""))
		require.Equal(t, "", ParseOrigMarker("[orig_task_id:]"))
	})
}
