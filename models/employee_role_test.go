package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmployeeRole(t *testing.T) {
	t.Run(`Can check`, func(t *testing.T) {
		require.Equal(t, true, RoleDirector.Can(ActionManageDicts))
		require.Equal(t, true, RoleDeputy.Can(ActionViewAllCards))
		require.Equal(t, true, RoleHead.Can(ActionCreateCard))
		require.Equal(t, false, RoleHead.Can(ActionViewAllCards))
		require.Equal(t, true, RoleSenior.Can(ActionCreateCard))
		require.Equal(t, false, RoleSenior.Can(ActionExportCard))
		require.Equal(t, false, RoleStaff.Can(ActionCreateCard))
		require.Equal(t, false, EmployeeRole("unknown").Can(ActionCreateCard))
	})

	t.Run(`CanBeFinalApprover check`, func(t *testing.T) {
		require.Equal(t, true, RoleDirector.CanBeFinalApprover())
		require.Equal(t, true, RoleDeputy.CanBeFinalApprover())
		require.Equal(t, false, RoleHead.CanBeFinalApprover())
		require.Equal(t, false, RoleSenior.CanBeFinalApprover())
		require.Equal(t, false, RoleStaff.CanBeFinalApprover())
	})

	t.Run(`CanRedirectTo check`, func(t *testing.T) {
		// директор перенаправляет кому угодно
		require.Equal(t, true, RoleDirector.CanRedirectTo(RoleDirector, false))
		require.Equal(t, true, RoleDirector.CanRedirectTo(RoleStaff, false))
		// заместитель не выше руководителя отдела
		require.Equal(t, true, RoleDeputy.CanRedirectTo(RoleHead, false))
		require.Equal(t, true, RoleDeputy.CanRedirectTo(RoleStaff, false))
		require.Equal(t, false, RoleDeputy.CanRedirectTo(RoleDirector, false))
		require.Equal(t, false, RoleDeputy.CanRedirectTo(RoleDeputy, true))
		// руководитель только внутри своего отдела
		require.Equal(t, true, RoleHead.CanRedirectTo(RoleStaff, true))
		require.Equal(t, false, RoleHead.CanRedirectTo(RoleStaff, false))
		// рядовые не перенаправляют
		require.Equal(t, false, RoleSenior.CanRedirectTo(RoleStaff, true))
		require.Equal(t, false, RoleStaff.CanRedirectTo(RoleStaff, true))
	})

	t.Run(`Rank check`, func(t *testing.T) {
		require.Greater(t, RoleDirector.Rank(), RoleDeputy.Rank())
		require.Greater(t, RoleDeputy.Rank(), RoleHead.Rank())
		require.Greater(t, RoleHead.Rank(), RoleSenior.Rank())
		require.Greater(t, RoleSenior.Rank(), RoleStaff.Rank())
		require.Equal(t, 0, EmployeeRole("unknown").Rank())
	})

	t.Run(`IsValid check`, func(t *testing.T) {
		require.Equal(t, true, RoleHead.IsValid())
		require.Equal(t, false, EmployeeRole("manager").IsValid())
	})
}
