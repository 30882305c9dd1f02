package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"reportflow/database"
)

// AuditLogResponse is an audit entry enriched with display names at read time
type AuditLogResponse struct {
	ID          uint                   `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	EventType   string                 `json:"event_type"`
	UserID      *uint                  `json:"user_id"`
	UserName    string                 `json:"user_name,omitempty"`
	TargetID    *uint                  `json:"target_user_id"`
	TargetName  string                 `json:"target_user_name,omitempty"`
	PerformedBy string                 `json:"performed_by"`
	IPAddress   *string                `json:"ip_address"`
	Details     map[string]interface{} `json:"details"`
}

// GetAuditLogs returns a newest-first page of audit entries
func GetAuditLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var total int64
	if err := database.DB.Model(&database.AuditLog{}).Count(&total).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching audit logs"})
		return
	}

	var entries []database.AuditLog
	if err := database.DB.Order("timestamp DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching audit logs"})
		return
	}

	// Resolve display names for the actors and targets on this page
	idSet := make(map[uint]struct{})
	for _, entry := range entries {
		if entry.UserID != nil {
			idSet[*entry.UserID] = struct{}{}
		}
		if entry.TargetUserID != nil {
			idSet[*entry.TargetUserID] = struct{}{}
		}
	}
	names := make(map[uint]string, len(idSet))
	if len(idSet) > 0 {
		ids := make([]uint, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		var users []database.User
		if err := database.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
			log.Printf("Database error resolving audit user names: %v", err)
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	logs := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		resp := AuditLogResponse{
			ID:          entry.ID,
			Timestamp:   entry.Timestamp,
			EventType:   entry.EventType,
			UserID:      entry.UserID,
			TargetID:    entry.TargetUserID,
			PerformedBy: entry.PerformedBy,
			IPAddress:   entry.IPAddress,
		}
		if entry.UserID != nil {
			resp.UserName = names[*entry.UserID]
		}
		if entry.TargetUserID != nil {
			resp.TargetName = names[*entry.TargetUserID]
		}
		if entry.Details != "" {
			if err := json.Unmarshal([]byte(entry.Details), &resp.Details); err != nil {
				log.Printf("Failed to decode audit details for entry %d: %v", entry.ID, err)
			}
		}
		logs = append(logs, resp)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"logs":        logs,
		"currentPage": page,
		"totalPages":  totalPages,
		"totalLogs":   total,
	})
}
