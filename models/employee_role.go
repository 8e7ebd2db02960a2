package models

type EmployeeRole string

const (
	RoleDirector EmployeeRole = "director"
	RoleDeputy   EmployeeRole = "deputy"
	RoleHead     EmployeeRole = "head"
	RoleSenior   EmployeeRole = "senior"
	RoleStaff    EmployeeRole = "staff"
)

var roleHumanName = map[EmployeeRole]string{
	RoleDirector: "Директор",
	RoleDeputy:   "Заместитель директора",
	RoleHead:     "Руководитель отдела",
	RoleSenior:   "Сотрудник с повышенными правами",
	RoleStaff:    "Обычный сотрудник",
}

func (r EmployeeRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r EmployeeRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

// порядок старшинства, директор выше всех
var roleRank = map[EmployeeRole]int{
	RoleDirector: 5,
	RoleDeputy:   4,
	RoleHead:     3,
	RoleSenior:   2,
	RoleStaff:    1,
}

func (r EmployeeRole) Rank() int {
	return roleRank[r]
}

type EmployeeAction string

const (
	ActionCreateCard     EmployeeAction = "create_card"
	ActionViewAllCards   EmployeeAction = "view_all_cards"
	ActionFinalApprove   EmployeeAction = "final_approve"
	ActionViewAnyTask    EmployeeAction = "view_any_task"
	ActionExportCard     EmployeeAction = "export_card"
	ActionManageDicts    EmployeeAction = "manage_dicts"
	ActionRedirectOthers EmployeeAction = "redirect_others"
)

// единая таблица полномочий, используется всеми проверками переходов
var roleActions = map[EmployeeRole]map[EmployeeAction]bool{
	RoleDirector: {
		ActionCreateCard:     true,
		ActionViewAllCards:   true,
		ActionFinalApprove:   true,
		ActionViewAnyTask:    true,
		ActionExportCard:     true,
		ActionManageDicts:    true,
		ActionRedirectOthers: true,
	},
	RoleDeputy: {
		ActionCreateCard:     true,
		ActionViewAllCards:   true,
		ActionFinalApprove:   true,
		ActionViewAnyTask:    true,
		ActionExportCard:     true,
		ActionManageDicts:    true,
		ActionRedirectOthers: true,
	},
	RoleHead: {
		ActionCreateCard:     true,
		ActionExportCard:     true,
		ActionRedirectOthers: true,
	},
	RoleSenior: {
		ActionCreateCard: true,
	},
	RoleStaff: {},
}

func (r EmployeeRole) Can(action EmployeeAction) bool {
	actions, exist := roleActions[r]
	if !exist {
		return false
	}
	return actions[action]
}

func (r EmployeeRole) CanBeFinalApprover() bool {
	return r == RoleDeputy || r == RoleDirector
}

// CanRedirectTo - единая политика перенаправления задач,
// применяется каждой точкой входа перенаправления
func (r EmployeeRole) CanRedirectTo(target EmployeeRole, sameDepartment bool) bool {
	switch r {
	case RoleDirector:
		return true
	case RoleDeputy:
		return target == RoleHead || target == RoleSenior || target == RoleStaff
	case RoleHead:
		return sameDepartment
	default:
		return false
	}
}
