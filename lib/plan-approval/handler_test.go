package planapprovalhandler

import (
	"testing"

	dbmodels "event-tracker-backend/models/db"

	"github.com/stretchr/testify/require"
)

func order(id, employeeID string, num int) dbmodels.CardApproverOrder {
	rec := dbmodels.CardApproverOrder{
		CardID:     "card-1",
		EmployeeID: employeeID,
		OrderNum:   num,
	}
	rec.ID = id
	return rec
}

func TestAdvanceChain(t *testing.T) {
	orders := []dbmodels.CardApproverOrder{
		order("o-1", "emp-a", 0),
		order("o-2", "emp-b", 1),
	}

	t.Run(`next approver in queue check`, func(t *testing.T) {
		step := advanceChain(orders, 0, true, false)
		require.NotNil(t, step.NextApprover)
		require.Equal(t, "emp-b", step.NextApprover.EmployeeID)
		require.Equal(t, 1, step.NextIndex)
		require.Equal(t, false, step.RouteToFinal)
		require.Equal(t, false, step.Approved)
	})

	t.Run(`route to final approver check`, func(t *testing.T) {
		step := advanceChain(orders, 1, true, false)
		require.Nil(t, step.NextApprover)
		require.Equal(t, true, step.RouteToFinal)
		require.Equal(t, false, step.Approved)
		require.Equal(t, len(orders), step.NextIndex)
	})

	t.Run(`approve without final approver check`, func(t *testing.T) {
		step := advanceChain(orders, 1, false, false)
		require.Nil(t, step.NextApprover)
		require.Equal(t, false, step.RouteToFinal)
		require.Equal(t, true, step.Approved)
		require.Equal(t, len(orders), step.NextIndex)
	})

	t.Run(`final approver decision check`, func(t *testing.T) {
		step := advanceChain(orders, len(orders), true, true)
		require.Nil(t, step.NextApprover)
		require.Equal(t, true, step.Approved)
		require.Equal(t, len(orders), step.NextIndex)
	})

	t.Run(`final approver decision mid-chain check`, func(t *testing.T) {
		step := advanceChain(orders, 0, true, true)
		require.Nil(t, step.NextApprover)
		require.Equal(t, false, step.RouteToFinal)
		require.Equal(t, true, step.Approved)
		require.Equal(t, len(orders), step.NextIndex)
	})

	t.Run(`single approver chain check`, func(t *testing.T) {
		single := []dbmodels.CardApproverOrder{order("o-1", "emp-a", 0)}
		step := advanceChain(single, 0, false, false)
		require.Nil(t, step.NextApprover)
		require.Equal(t, true, step.Approved)
		require.Equal(t, 1, step.NextIndex)
	})
}

func TestAllowedActors(t *testing.T) {
	finalID := "emp-final"

	t.Run(`queue approver at current index check`, func(t *testing.T) {
		queueOrder := order("o-2", "emp-b", 1)
		card := dbmodels.EventCard{CurrentApproverIndex: 1}
		queueID, gotFinalID := allowedActors(card, &queueOrder)
		require.Equal(t, "emp-b", queueID)
		require.Equal(t, "", gotFinalID)
	})

	t.Run(`final approver allowed mid-chain check`, func(t *testing.T) {
		queueOrder := order("o-1", "emp-a", 0)
		card := dbmodels.EventCard{CurrentApproverIndex: 0, FinalApproverID: &finalID}
		queueID, gotFinalID := allowedActors(card, &queueOrder)
		require.Equal(t, "emp-a", queueID)
		require.Equal(t, finalID, gotFinalID)
	})

	t.Run(`terminal index with final approver check`, func(t *testing.T) {
		card := dbmodels.EventCard{CurrentApproverIndex: 2, FinalApproverID: &finalID}
		queueID, gotFinalID := allowedActors(card, nil)
		require.Equal(t, "", queueID)
		require.Equal(t, finalID, gotFinalID)
	})

	t.Run(`terminal index without final approver check`, func(t *testing.T) {
		card := dbmodels.EventCard{CurrentApproverIndex: 2}
		queueID, gotFinalID := allowedActors(card, nil)
		require.Equal(t, "", queueID)
		require.Equal(t, "", gotFinalID)
	})
}
