package database

import (
	"encoding/json"
	"log"
	"time"
)

// RecordAudit appends an audit log entry. Writes are best-effort: a failed
// insert is logged and swallowed so the triggering action still succeeds.
func RecordAudit(eventType string, userID, targetUserID *uint, performedBy, ipAddress string, details map[string]interface{}) {
	entry := AuditLog{
		Timestamp:    time.Now(),
		EventType:    eventType,
		UserID:       userID,
		TargetUserID: targetUserID,
		PerformedBy:  performedBy,
	}

	if ipAddress != "" {
		entry.IPAddress = &ipAddress
	}

	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			log.Printf("Failed to encode audit details: %v", err)
		} else {
			entry.Details = string(data)
		}
	}

	if err := DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to write audit log entry: %v", err)
	}
}
