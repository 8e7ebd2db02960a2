package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskStatus(t *testing.T) {
	t.Run(`IsAllowChange check`, func(t *testing.T) {
		require.Equal(t, true, TaskStatusNew.IsAllowChange(TaskStatusInProgress))
		require.Equal(t, true, TaskStatusNew.IsAllowChange(TaskStatusSentForReview))
		require.Equal(t, true, TaskStatusInProgress.IsAllowChange(TaskStatusSentForReview))
		require.Equal(t, false, TaskStatusInProgress.IsAllowChange(TaskStatusNew))
		// исполнение можно дополнить, пока проверка не взята в работу
		require.Equal(t, true, TaskStatusSentForReview.IsAllowChange(TaskStatusSentForReview))
		require.Equal(t, true, TaskStatusSentForReview.IsAllowChange(TaskStatusUnderReview))
		require.Equal(t, true, TaskStatusUnderReview.IsAllowChange(TaskStatusDone))
		require.Equal(t, true, TaskStatusUnderReview.IsAllowChange(TaskStatusRejected))
		require.Equal(t, false, TaskStatusUnderReview.IsAllowChange(TaskStatusInProgress))
		// отклонённая возвращается в цикл
		require.Equal(t, true, TaskStatusRejected.IsAllowChange(TaskStatusSentForReview))
		require.Equal(t, true, TaskStatusRejected.IsAllowChange(TaskStatusInProgress))
		// выполненная терминальна
		require.Equal(t, false, TaskStatusDone.IsAllowChange(TaskStatusInProgress))
		require.Equal(t, false, TaskStatusDone.IsAllowChange(TaskStatusRejected))
	})

	t.Run(`ToHuman check`, func(t *testing.T) {
		require.Equal(t, "Выполнена", TaskStatusDone.ToHuman())
		require.Equal(t, "custom", TaskStatus("custom").ToHuman())
	})
}

func TestTaskPriority(t *testing.T) {
	t.Run(`IsValid check`, func(t *testing.T) {
		require.Equal(t, true, PriorityNormal.IsValid())
		require.Equal(t, true, PriorityUrgent.IsValid())
		require.Equal(t, false, TaskPriority("high").IsValid())
	})
}
