// services/audit.go
package services

import (
	"encoding/json"
	"fmt"
	"log"

	"kalongo-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recordAudit appends an audit trail entry. Best-effort: a failed audit
// write is logged, never propagated into the business operation.
func recordAudit(db *gorm.DB, actor *models.User, action, modelName string, objectID uint, details map[string]interface{}) {
	entry := models.AuditLog{
		Action:    action,
		ModelName: modelName,
		ObjectID:  fmt.Sprintf("%d", objectID),
	}
	if actor != nil {
		id := actor.ID
		entry.UserID = &id
	}
	if len(details) > 0 {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(raw)
		}
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("warning: failed to write audit log for %s: %v", action, err)
	}
}
