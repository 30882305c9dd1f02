package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reportflow/config"
	"reportflow/database"
	"reportflow/policy"
)

// ReportForm contains the multipart form fields for report create/edit.
// Dates arrive as ISO-8601 strings; the optional file arrives under the
// "uploadReport" field. structureUnit, submittedBy and status are never read
// from the client.
type ReportForm struct {
	ReportType         string `form:"reportType"`
	ReportCode         string `form:"reportCode"`
	ReportDate         string `form:"reportDate"`
	ReportPeriodStart  string `form:"reportPeriodStart"`
	ReportPeriodEnd    string `form:"reportPeriodEnd"`
	ReportingFrequency string `form:"reportingFrequency"`
}

type parsedReportForm struct {
	ReportDate        time.Time
	ReportPeriodStart time.Time
	ReportPeriodEnd   time.Time
	Title             string
}

// StatusUpdateRequest contains the body for the status update endpoint
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func parseReportDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// validateReportForm checks every field and returns all violations, not just
// the first one
func validateReportForm(form *ReportForm) (parsedReportForm, []string) {
	var parsed parsedReportForm
	var errs []string

	switch form.ReportType {
	case "":
		errs = append(errs, "reportType is required")
	case database.ReportTypeFinancial, database.ReportTypeOperational:
	default:
		errs = append(errs, fmt.Sprintf("reportType must be %q or %q", database.ReportTypeFinancial, database.ReportTypeOperational))
	}

	if form.ReportCode == "" {
		errs = append(errs, "reportCode is required")
	} else if title, ok := database.ReportTitle(form.ReportCode); !ok {
		errs = append(errs, fmt.Sprintf("reportCode %q is not a known report code", form.ReportCode))
	} else {
		parsed.Title = title
		if form.ReportType != "" && !database.ReportCodeMatchesType(form.ReportCode, form.ReportType) {
			errs = append(errs, fmt.Sprintf("reportCode %q does not belong to report type %q", form.ReportCode, form.ReportType))
		}
	}

	if form.ReportDate == "" {
		errs = append(errs, "reportDate is required")
	} else if t, err := parseReportDate(form.ReportDate); err != nil {
		errs = append(errs, "reportDate must be a valid ISO-8601 date")
	} else {
		parsed.ReportDate = t
	}

	if form.ReportPeriodStart == "" {
		errs = append(errs, "reportPeriodStart is required")
	} else if t, err := parseReportDate(form.ReportPeriodStart); err != nil {
		errs = append(errs, "reportPeriodStart must be a valid ISO-8601 date")
	} else {
		parsed.ReportPeriodStart = t
	}

	if form.ReportPeriodEnd == "" {
		errs = append(errs, "reportPeriodEnd is required")
	} else if t, err := parseReportDate(form.ReportPeriodEnd); err != nil {
		errs = append(errs, "reportPeriodEnd must be a valid ISO-8601 date")
	} else {
		parsed.ReportPeriodEnd = t
	}

	if !parsed.ReportPeriodStart.IsZero() && !parsed.ReportPeriodEnd.IsZero() &&
		parsed.ReportPeriodEnd.Before(parsed.ReportPeriodStart) {
		errs = append(errs, "reportPeriodEnd must not be before reportPeriodStart")
	}

	if form.ReportingFrequency == "" {
		errs = append(errs, "reportingFrequency is required")
	} else if !database.IsValidReportingFrequency(form.ReportingFrequency) {
		errs = append(errs, "reportingFrequency must be one of Daily, Weekly, Monthly, Quarterly, Annually")
	}

	return parsed, errs
}

// saveUploadedReport stores the optional attachment under a server-generated
// name and returns the stored filename, or nil when no file was sent
func saveUploadedReport(c *gin.Context) (*string, error) {
	file, err := c.FormFile("uploadReport")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		return nil, err
	}

	filename := uuid.New().String() + "-" + filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(config.AppConfig.UploadDir, filename)); err != nil {
		return nil, err
	}

	return &filename, nil
}

// removeStoredFile deletes a stored attachment, best-effort
func removeStoredFile(filename string) {
	if filename == "" {
		return
	}
	if err := os.Remove(filepath.Join(config.AppConfig.UploadDir, filename)); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove stored file %s: %v", filename, err)
	}
}

// CreateReport submits a new report. structureUnit and submittedBy are
// stamped from the authenticated actor regardless of client input; status
// always starts Pending.
func CreateReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	structureUnit := currentString(c, "structureUnit")
	if structureUnit == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User profile is missing a structure unit"})
		return
	}

	var form ReportForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": []string{"Invalid request data"}})
		return
	}

	parsed, errs := validateReportForm(&form)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
		return
	}

	storedFile, err := saveUploadedReport(c)
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing uploaded file"})
		return
	}

	report := database.Report{
		ReportType:         form.ReportType,
		ReportCode:         form.ReportCode,
		Title:              parsed.Title,
		StructureUnit:      structureUnit,
		ReportDate:         parsed.ReportDate,
		ReportPeriodStart:  parsed.ReportPeriodStart,
		ReportPeriodEnd:    parsed.ReportPeriodEnd,
		ReportingFrequency: form.ReportingFrequency,
		UploadReport:       storedFile,
		SubmittedByID:      userID,
		Status:             database.ReportStatusPending,
	}

	if result := database.DB.Create(&report); result.Error != nil {
		if storedFile != nil {
			removeStoredFile(*storedFile)
		}
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error submitting report"})
		return
	}

	database.DB.Preload("SubmittedBy").First(&report, report.ID)

	c.JSON(http.StatusCreated, gin.H{"message": "Report submitted successfully", "report": report})
}

// GetReports lists reports newest-first. Reviewer roles see the full review
// queue; everyone else sees only their own submissions.
func GetReports(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role := currentString(c, "role")

	query := database.DB.Preload("SubmittedBy").Order("created_at DESC")
	if !policy.Allows(role, policy.ActionViewAllReports) {
		query = query.Where("submitted_by_id = ?", userID)
	}

	var reports []database.Report
	if err := query.Find(&reports).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetReportByID returns a single report to its owner or a reviewer role
func GetReportByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role := currentString(c, "role")

	reportID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var report database.Report
	if err := database.DB.Preload("SubmittedBy").First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	if report.SubmittedByID != userID && !policy.Allows(role, policy.ActionViewAllReports) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// UpdateReportStatus approves or rejects a pending report. The only legal
// transitions are from Pending to Approved and from Pending to Rejected;
// anything else is a conflict, never a silent overwrite.
func UpdateReportStatus(c *gin.Context) {
	var statusRequest StatusUpdateRequest
	if err := c.ShouldBindJSON(&statusRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": ValidationMessages(err)})
		return
	}

	switch statusRequest.Status {
	case database.ReportStatusApproved, database.ReportStatusRejected, database.ReportStatusPending:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status provided."})
		return
	}

	reportID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var report database.Report
	if err := database.DB.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	if report.Status != database.ReportStatusPending || statusRequest.Status == database.ReportStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Illegal status transition from %q to %q", report.Status, statusRequest.Status),
		})
		return
	}

	report.Status = statusRequest.Status
	if err := database.DB.Save(&report).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating report status"})
		return
	}

	database.DB.Preload("SubmittedBy").First(&report, report.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Report status updated to %s", report.Status),
		"report":  report,
	})
}

// UpdateReport edits a report. Only the submitter may edit, and only while
// the report is Pending or Rejected; the status itself is preserved.
func UpdateReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reportID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var report database.Report
	if err := database.DB.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	if !policy.CanModifyReport(userID, report.SubmittedByID, report.Status) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		return
	}

	var form ReportForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": []string{"Invalid request data"}})
		return
	}

	parsed, errs := validateReportForm(&form)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
		return
	}

	newFile, err := saveUploadedReport(c)
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing uploaded file"})
		return
	}

	previousFile := report.UploadReport

	report.ReportType = form.ReportType
	report.ReportCode = form.ReportCode
	report.Title = parsed.Title
	report.ReportDate = parsed.ReportDate
	report.ReportPeriodStart = parsed.ReportPeriodStart
	report.ReportPeriodEnd = parsed.ReportPeriodEnd
	report.ReportingFrequency = form.ReportingFrequency
	if newFile != nil {
		report.UploadReport = newFile
	}

	if err := database.DB.Save(&report).Error; err != nil {
		if newFile != nil {
			removeStoredFile(*newFile)
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating report"})
		return
	}

	// Replacement succeeded; discard the superseded blob
	if newFile != nil && previousFile != nil {
		removeStoredFile(*previousFile)
	}

	database.DB.Preload("SubmittedBy").First(&report, report.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Report updated successfully", "report": report})
}

// DeleteReport removes a report. Only the submitter may delete, and only
// while the report is Pending or Rejected.
func DeleteReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reportID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var report database.Report
	if err := database.DB.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	if !policy.CanModifyReport(userID, report.SubmittedByID, report.Status) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		return
	}

	if err := database.DB.Delete(&report).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting report"})
		return
	}

	if report.UploadReport != nil {
		removeStoredFile(*report.UploadReport)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// DownloadReport serves a stored attachment. Any requested name that differs
// from its own basename is a traversal attempt and is rejected.
func DownloadReport(c *gin.Context) {
	filename := c.Param("filename")

	safeFilename := filepath.Base(filename)
	if safeFilename != filename || filename == "" || filename == "." || filename == ".." {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename."})
		return
	}

	path := filepath.Join(config.AppConfig.UploadDir, safeFilename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found."})
		return
	}

	c.FileAttachment(path, safeFilename)
}
