package monthlycardsworker

import (
	"testing"
	"time"

	dbmodels "event-tracker-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestMonthCardTitle(t *testing.T) {
	t.Run(`title format check`, func(t *testing.T) {
		department := dbmodels.Department{Name: "Отдел кадров"}
		require.Equal(t, "Задачи отдела «Отдел кадров» на Сентябрь 2026", monthCardTitle(department, time.September, 2026))
		require.Equal(t, "Задачи отдела «Отдел кадров» на Январь 2027", monthCardTitle(department, time.January, 2027))
		require.Equal(t, "Задачи отдела «Отдел кадров» на Декабрь 2026", monthCardTitle(department, time.December, 2026))
	})
}
