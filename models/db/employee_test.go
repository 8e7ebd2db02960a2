package dbmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDelegationDates(t *testing.T) {
	until := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	delegateID := "emp-b"
	rec := Employee{DelegateToID: &delegateID, DelegateUntil: &until}

	t.Run(`until date is inclusive check`, func(t *testing.T) {
		// время внутри последнего дня не считается просрочкой
		lastDay := time.Date(2026, 9, 10, 23, 59, 0, 0, time.UTC)
		require.Equal(t, true, rec.HasActiveDelegation(lastDay))
		require.Equal(t, false, rec.DelegationExpired(lastDay))

		nextDay := time.Date(2026, 9, 11, 0, 0, 1, 0, time.UTC)
		require.Equal(t, false, rec.HasActiveDelegation(nextDay))
		require.Equal(t, true, rec.DelegationExpired(nextDay))
	})

	t.Run(`no delegation check`, func(t *testing.T) {
		empty := Employee{}
		require.Equal(t, false, empty.HasActiveDelegation(until))
		require.Equal(t, false, empty.DelegationExpired(until))
	})

	t.Run(`ToDate truncation check`, func(t *testing.T) {
		stamp := time.Date(2026, 9, 10, 18, 45, 12, 0, time.UTC)
		require.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), ToDate(stamp))
	})
}
