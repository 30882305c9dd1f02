package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reportflow/database"
)

func TestAllowsMatrix(t *testing.T) {
	cases := []struct {
		role    string
		action  Action
		allowed bool
	}{
		{database.RoleDistrictExpert, ActionCreateReport, true},
		{database.RoleOperationManager, ActionCreateReport, true},
		{database.RoleCustomerRelationManager, ActionCreateReport, true},
		{database.RoleSystemAdmin, ActionCreateReport, true},
		{database.RoleHeadOfficeExpert, ActionCreateReport, false},
		{database.RoleDistrictManager, ActionCreateReport, false},

		{database.RoleHeadOfficeExpert, ActionApproveOrRejectReport, true},
		{database.RoleDistrictManager, ActionApproveOrRejectReport, true},
		{database.RoleSystemAdmin, ActionApproveOrRejectReport, true},
		{database.RoleDistrictExpert, ActionApproveOrRejectReport, false},
		{database.RoleOperationManager, ActionApproveOrRejectReport, false},
		{database.RoleCustomerRelationManager, ActionApproveOrRejectReport, false},

		{database.RoleHeadOfficeExpert, ActionViewAllReports, true},
		{database.RoleDistrictManager, ActionViewAllReports, true},
		{database.RoleSystemAdmin, ActionViewAllReports, true},
		{database.RoleDistrictExpert, ActionViewAllReports, false},

		{database.RoleSystemAdmin, ActionManageUsers, true},
		{database.RoleSystemAdmin, ActionConfigureWorkflow, true},
		{database.RoleSystemAdmin, ActionViewAuditLog, true},
		{database.RoleHeadOfficeExpert, ActionManageUsers, false},
		{database.RoleDistrictManager, ActionConfigureWorkflow, false},
		{database.RoleDistrictExpert, ActionViewAuditLog, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, Allows(tc.role, tc.action), "role %q action %q", tc.role, tc.action)
	}
}

func TestViewOwnReportsOpenToAnyAuthenticatedRole(t *testing.T) {
	for _, role := range database.Roles {
		assert.True(t, Allows(role, ActionViewOwnReports), "role %q", role)
	}
	// Unlisted roles still count as authenticated employees
	assert.True(t, Allows("Employee", ActionViewOwnReports))
}

func TestUnknownRoleAlwaysDenied(t *testing.T) {
	privileged := []Action{
		ActionCreateReport,
		ActionViewAllReports,
		ActionApproveOrRejectReport,
		ActionManageUsers,
		ActionConfigureWorkflow,
		ActionViewAuditLog,
	}
	for _, action := range privileged {
		assert.False(t, Allows("", action), "empty role should be denied %q", action)
		assert.False(t, Allows("Janitor", action), "unknown role should be denied %q", action)
	}
	// An actor with no resolvable role is denied everything, even the open action
	assert.False(t, Allows("", ActionViewOwnReports))
}

func TestUnknownActionDenied(t *testing.T) {
	assert.False(t, Allows(database.RoleSystemAdmin, Action("launch_missiles")))
}

func TestCanModifyReport(t *testing.T) {
	const owner, stranger = uint(1), uint(2)

	cases := []struct {
		actor   uint
		status  string
		allowed bool
	}{
		{owner, database.ReportStatusPending, true},
		{owner, database.ReportStatusRejected, true},
		{owner, database.ReportStatusApproved, false},
		{stranger, database.ReportStatusPending, false},
		{stranger, database.ReportStatusRejected, false},
		{stranger, database.ReportStatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanModifyReport(tc.actor, owner, tc.status),
			"actor %d status %q", tc.actor, tc.status)
	}
}
