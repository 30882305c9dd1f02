package database

// reportTitles maps every known report code to its human title.
// Titles are always derived from this catalog, never taken from the client.
var reportTitles = map[string]string{
	"OB_TB001":   "Trial Balance",
	"NBE_FIN006": "Income Statement",
	"NBE_FIN004": "Balance Sheet – Institutional",
	"BRE_INC001": "Breakdown of Income Accounts",
	"BRE_EXP001": "Breakdown of Expenses",
	"NP024":      "Monthly Average Reserve Report",
	"NBE_FIN003": "Liquidity Requirement Report",
	"NBE_FIN010": "Profit and Loss Statement",
	"NBE_FIN005": "Balance Sheet – NBE",
	"NBE_FIN008": "Non-Performing Loans and Advances & Provisions",
	"NBE_FIN007": "Loan Classification and Provisioning",
	"OB_FIN003":  "Fixed Asset / PPE",
	"NBE_FIN011": "Capital Adequacy Report – On-Balance Sheet",
	"NBE_FIN012": "Capital Adequacy Report – Off-Balance Sheet",
	"NBE_FIN013": "Capital Adequacy Report (Quarterly) – Capital Components",
	"NBE_FIN014": "Maturity of Assets & Liabilities",
	"NBE_LN001":  "Loan & Advance Disbursement, Collection & Outstanding",
	"NBE_LN002":  "Loan to Related Parties",
	"NBE_LN003":  "Borrowers Exceeding 10% of the Bank's Capital",
	"NBE_PIF001": "Personal Information – Individual",
	"NBE_PIF002": "Personal Information – Non-Individual",
	"OB_INSU001": "Insurance Activity Report by Business Unit",
	"OB_ARR001":  "Arrears by Age – Individual",
	"OB_ARR002":  "Arrears Beneficiary Report",
	"OB_ARR003":  "Arrears by Age – Summary",
}

// reportTypeByCode assigns each code to its report type
var reportTypeByCode = map[string]string{
	"OB_TB001":   ReportTypeFinancial,
	"NBE_FIN006": ReportTypeFinancial,
	"NBE_FIN004": ReportTypeFinancial,
	"BRE_INC001": ReportTypeFinancial,
	"BRE_EXP001": ReportTypeFinancial,
	"NP024":      ReportTypeFinancial,
	"NBE_FIN003": ReportTypeFinancial,
	"NBE_FIN010": ReportTypeFinancial,
	"NBE_FIN005": ReportTypeFinancial,
	"NBE_FIN008": ReportTypeFinancial,
	"NBE_FIN007": ReportTypeFinancial,
	"OB_FIN003":  ReportTypeFinancial,
	"NBE_FIN011": ReportTypeFinancial,
	"NBE_FIN012": ReportTypeFinancial,
	"NBE_FIN013": ReportTypeFinancial,
	"NBE_FIN014": ReportTypeFinancial,
	"NBE_LN001":  ReportTypeOperational,
	"NBE_LN002":  ReportTypeOperational,
	"NBE_LN003":  ReportTypeOperational,
	"NBE_PIF001": ReportTypeOperational,
	"NBE_PIF002": ReportTypeOperational,
	"OB_INSU001": ReportTypeOperational,
	"OB_ARR001":  ReportTypeOperational,
	"OB_ARR002":  ReportTypeOperational,
	"OB_ARR003":  ReportTypeOperational,
}

// ReportTitle returns the catalog title for a report code
func ReportTitle(code string) (string, bool) {
	title, ok := reportTitles[code]
	return title, ok
}

// ReportCodeMatchesType reports whether code belongs to the given report type
func ReportCodeMatchesType(code, reportType string) bool {
	return reportTypeByCode[code] == reportType
}
