// Package policy holds the central role/permission matrix. Every role check
// in the application goes through this package so that adding an action or a
// role is a single-site change.
package policy

import (
	"reportflow/database"
)

// Action identifies a permission-gated operation
type Action string

const (
	ActionCreateReport          Action = "create_report"
	ActionViewOwnReports        Action = "view_own_reports"
	ActionViewAllReports        Action = "view_all_reports"
	ActionApproveOrRejectReport Action = "approve_or_reject_report"
	ActionManageUsers           Action = "manage_users"
	ActionConfigureWorkflow     Action = "configure_workflow"
	ActionViewAuditLog          Action = "view_audit_log"
)

// anyRole marks actions open to every authenticated role
const anyRole = "*"

// matrix maps each action to the roles allowed to perform it
var matrix = map[Action][]string{
	ActionCreateReport: {
		database.RoleDistrictExpert,
		database.RoleOperationManager,
		database.RoleCustomerRelationManager,
		database.RoleSystemAdmin,
	},
	ActionViewOwnReports: {anyRole},
	ActionViewAllReports: {
		database.RoleHeadOfficeExpert,
		database.RoleDistrictManager,
		database.RoleSystemAdmin,
	},
	ActionApproveOrRejectReport: {
		database.RoleHeadOfficeExpert,
		database.RoleDistrictManager,
		database.RoleSystemAdmin,
	},
	ActionManageUsers:       {database.RoleSystemAdmin},
	ActionConfigureWorkflow: {database.RoleSystemAdmin},
	ActionViewAuditLog:      {database.RoleSystemAdmin},
}

// Allows reports whether role may perform action. Unknown roles and unknown
// actions are always denied; an unresolvable role never gains a privileged
// action.
func Allows(role string, action Action) bool {
	allowed, ok := matrix[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == anyRole {
			return role != ""
		}
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles returns a copy of the roles permitted to perform action
func AllowedRoles(action Action) []string {
	allowed := matrix[action]
	out := make([]string, len(allowed))
	copy(out, allowed)
	return out
}

// CanModifyReport reports whether the actor may edit or delete a report.
// Ownership plus state, independent of role: only the submitter, and only
// while the report is still Pending or Rejected. Approved reports are
// immutable.
func CanModifyReport(actorID, submittedByID uint, status string) bool {
	if actorID != submittedByID {
		return false
	}
	return status == database.ReportStatusPending || status == database.ReportStatusRejected
}
