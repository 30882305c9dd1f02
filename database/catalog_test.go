package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportTitleDerivedFromCatalog(t *testing.T) {
	title, ok := ReportTitle("OB_TB001")
	require.True(t, ok)
	assert.Equal(t, "Trial Balance", title)

	_, ok = ReportTitle("NOT_A_CODE")
	assert.False(t, ok)
}

func TestEveryCatalogCodeHasAType(t *testing.T) {
	for code := range reportTitles {
		reportType, ok := reportTypeByCode[code]
		require.True(t, ok, "code %q has no report type", code)
		assert.Contains(t, []string{ReportTypeFinancial, ReportTypeOperational}, reportType)
	}
	assert.Equal(t, len(reportTitles), len(reportTypeByCode))
}

func TestReportCodeMatchesType(t *testing.T) {
	assert.True(t, ReportCodeMatchesType("OB_TB001", ReportTypeFinancial))
	assert.False(t, ReportCodeMatchesType("OB_TB001", ReportTypeOperational))
	assert.True(t, ReportCodeMatchesType("NBE_LN001", ReportTypeOperational))
	assert.False(t, ReportCodeMatchesType("NOT_A_CODE", ReportTypeFinancial))
}

func TestRoleAndUnitEnums(t *testing.T) {
	for _, role := range Roles {
		assert.True(t, IsValidRole(role))
	}
	assert.False(t, IsValidRole("Employee"))
	assert.False(t, IsValidRole(""))

	assert.True(t, IsValidStructureUnit("Head Office"))
	assert.True(t, IsValidStructureUnit("Bonga District"))
	assert.False(t, IsValidStructureUnit("Atlantis District"))
}

func TestReportingFrequencyEnum(t *testing.T) {
	for _, freq := range ReportingFrequencies {
		assert.True(t, IsValidReportingFrequency(freq))
	}
	assert.False(t, IsValidReportingFrequency("Hourly"))
}

func TestWorkflowApprovalOrderRoundTrip(t *testing.T) {
	var w Workflow
	require.NoError(t, w.SetApprovalOrder([]string{RoleDistrictManager, RoleHeadOfficeExpert}))
	assert.Equal(t, []string{RoleDistrictManager, RoleHeadOfficeExpert}, w.GetApprovalOrder())
}
