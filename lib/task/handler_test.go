package taskhandler

import (
	"testing"

	"event-tracker-backend/models"
	dbmodels "event-tracker-backend/models/db"

	"github.com/stretchr/testify/require"
)

func testEmployee(id string, role models.EmployeeRole, departmentID string) dbmodels.Employee {
	rec := dbmodels.Employee{Role: role}
	rec.ID = id
	if departmentID != "" {
		rec.DepartmentID = &departmentID
	}
	return rec
}

func TestCanAssign(t *testing.T) {
	t.Run(`assign to self check`, func(t *testing.T) {
		staff := testEmployee("emp-a", models.RoleStaff, "dep-1")
		require.Equal(t, true, canAssign(staff, staff))
	})

	t.Run(`director assigns anyone check`, func(t *testing.T) {
		director := testEmployee("emp-d", models.RoleDirector, "")
		other := testEmployee("emp-b", models.RoleHead, "dep-2")
		require.Equal(t, true, canAssign(director, other))
	})

	t.Run(`deputy not above deputy check`, func(t *testing.T) {
		deputy := testEmployee("emp-z", models.RoleDeputy, "dep-1")
		director := testEmployee("emp-d", models.RoleDirector, "dep-1")
		staff := testEmployee("emp-b", models.RoleStaff, "dep-2")
		require.Equal(t, true, canAssign(deputy, staff))
		require.Equal(t, false, canAssign(deputy, director))
	})

	t.Run(`head only within department check`, func(t *testing.T) {
		head := testEmployee("emp-h", models.RoleHead, "dep-1")
		colleague := testEmployee("emp-b", models.RoleStaff, "dep-1")
		outsider := testEmployee("emp-c", models.RoleStaff, "dep-2")
		noDepartment := testEmployee("emp-n", models.RoleStaff, "")
		require.Equal(t, true, canAssign(head, colleague))
		require.Equal(t, false, canAssign(head, outsider))
		require.Equal(t, false, canAssign(head, noDepartment))
	})

	t.Run(`staff assigns no one check`, func(t *testing.T) {
		staff := testEmployee("emp-a", models.RoleStaff, "dep-1")
		colleague := testEmployee("emp-b", models.RoleStaff, "dep-1")
		require.Equal(t, false, canAssign(staff, colleague))
	})
}
