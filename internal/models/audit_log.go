package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Action    string    `gorm:"size:50;not null" json:"action"` // e.g. "CREATE_USER", "ADD_FAVORITE", "SEED"
	EntityID  string    `gorm:"size:50" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}

// All lists every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{&User{}, &Character{}, &Planet{}, &Vehicle{}, &Favorite{}, &AuditLog{}, &SeedRun{}}
}
