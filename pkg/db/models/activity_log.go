package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionUpdateProduct = "update_product"
	ActionDeleteProduct = "delete_product"
	ActionUpdateStatus  = "update_status"

	EntityProduct = "product"
	EntityOrder   = "order"
)

// ActivityLog is one admin audit entry.
type ActivityLog struct {
	ID         string         `gorm:"column:id;primaryKey" json:"id"`
	ActorID    *string        `gorm:"column:actor_id;index" json:"actor_id"`
	Action     string         `gorm:"column:action;not null;index" json:"action"`
	EntityType string         `gorm:"column:entity_type;not null" json:"entity_type"`
	EntityID   string         `gorm:"column:entity_id;not null;index" json:"entity_id"`
	Metadata   datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "admin_activity_logs"
}

func (a *ActivityLog) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.Must(uuid.NewV7()).String()
	}
	return nil
}
