package database

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// User represents a user in the system
type User struct {
	gorm.Model
	Name          string `json:"name"`
	Email         string `json:"email" gorm:"uniqueIndex"`
	Password      string `json:"-"`
	Phone         string `json:"phone" gorm:"uniqueIndex"`
	Role          string `json:"role"`
	JobPosition   string `json:"job_position"`
	StructureUnit string `json:"structure_unit"`
}

// Report represents a periodic compliance report submitted for review
type Report struct {
	gorm.Model
	ReportType         string    `json:"report_type"`
	ReportCode         string    `json:"report_code"`
	Title              string    `json:"title"`
	StructureUnit      string    `json:"structure_unit"`
	ReportDate         time.Time `json:"report_date"`
	ReportPeriodStart  time.Time `json:"report_period_start"`
	ReportPeriodEnd    time.Time `json:"report_period_end"`
	ReportingFrequency string    `json:"reporting_frequency"`
	UploadReport       *string   `json:"upload_report"`
	SubmittedByID      uint      `json:"submitted_by_id"`
	Status             string    `json:"status"`
	SubmittedBy        User      `gorm:"foreignKey:SubmittedByID" json:"submitted_by"`
}

// Workflow represents an admin-defined named sequence of approval roles
type Workflow struct {
	gorm.Model
	Name          string `json:"name" gorm:"uniqueIndex"`
	ApprovalOrder string `json:"-" gorm:"type:text"`
}

// SetApprovalOrder stores the ordered role sequence as JSON
func (w *Workflow) SetApprovalOrder(roles []string) error {
	data, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	w.ApprovalOrder = string(data)
	return nil
}

// GetApprovalOrder returns the ordered role sequence
func (w *Workflow) GetApprovalOrder() []string {
	var roles []string
	if err := json.Unmarshal([]byte(w.ApprovalOrder), &roles); err != nil {
		return nil
	}
	return roles
}

// AuditLog represents an append-only security event record
type AuditLog struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamp    time.Time `gorm:"index" json:"timestamp"`
	EventType    string    `gorm:"size:50;not null;index" json:"event_type"`
	UserID       *uint     `json:"user_id"`
	TargetUserID *uint     `json:"target_user_id"`
	PerformedBy  string    `gorm:"size:255;not null" json:"performed_by"`
	IPAddress    *string   `gorm:"size:50" json:"ip_address"`
	Details      string    `gorm:"type:text" json:"details"`
}

// User roles
const (
	RoleSystemAdmin             = "System Admin"
	RoleHeadOfficeExpert        = "Head Office Expert"
	RoleDistrictManager         = "District Manager"
	RoleDistrictExpert          = "District Expert"
	RoleOperationManager        = "Operation Manager"
	RoleCustomerRelationManager = "Customer Relation Manager"
)

// Roles is the closed set of assignable roles
var Roles = []string{
	RoleSystemAdmin,
	RoleHeadOfficeExpert,
	RoleDistrictManager,
	RoleDistrictExpert,
	RoleOperationManager,
	RoleCustomerRelationManager,
}

// IsValidRole reports whether role is a member of the fixed role enum
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// StructureUnits is the set of organizational units users and reports belong to
var StructureUnits = []string{
	"Head Office",
	"Bonga District",
	"Arba Minch District",
	"Dilla District",
	"Hawassa Ketema District",
	"Durame District",
	"Sodo District",
	"Segen District",
	"Siddama District",
	"Tercha District",
	"Wolkite District",
	"Worabe District",
	"Aleta Wondo District",
	"Sawula District",
	"Halaba District",
	"Jemu District",
}

// IsValidStructureUnit reports whether unit is a known organizational unit
func IsValidStructureUnit(unit string) bool {
	for _, u := range StructureUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// Report status values
const (
	ReportStatusPending  = "Pending"
	ReportStatusApproved = "Approved"
	ReportStatusRejected = "Rejected"
)

// Report types
const (
	ReportTypeFinancial   = "Financial Report"
	ReportTypeOperational = "Operational Report"
)

// ReportingFrequencies is the set of accepted reporting cadences
var ReportingFrequencies = []string{"Daily", "Weekly", "Monthly", "Quarterly", "Annually"}

// IsValidReportingFrequency reports whether freq is an accepted cadence
func IsValidReportingFrequency(freq string) bool {
	for _, f := range ReportingFrequencies {
		if f == freq {
			return true
		}
	}
	return false
}

// Audit event types
const (
	EventFailedLogin          = "FAILED_LOGIN"
	EventRoleChange           = "ROLE_CHANGE"
	EventPermissionChange     = "PERMISSION_CHANGE"
	EventUserCreated          = "USER_CREATED"
	EventUserDeleted          = "USER_DELETED"
	EventPasswordResetRequest = "PASSWORD_RESET_REQUEST"
	EventPasswordResetSuccess = "PASSWORD_RESET_SUCCESS"
)
