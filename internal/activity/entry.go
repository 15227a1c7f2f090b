package activity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"gorm.io/datatypes"
)

// Entry is one admin action to record. ActorID is nil when the caller did
// not identify itself.
type Entry struct {
	ActorID    *string
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]any
}

// ActorRef converts an optional actor id into the nullable column value.
func ActorRef(actorID string) *string {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return nil
	}
	return &actorID
}

func (e Entry) validate() error {
	switch {
	case strings.TrimSpace(e.Action) == "":
		return fmt.Errorf("activity action required")
	case strings.TrimSpace(e.EntityType) == "":
		return fmt.Errorf("activity entity type required")
	case strings.TrimSpace(e.EntityID) == "":
		return fmt.Errorf("activity entity id required")
	}
	return nil
}

func (e Entry) toModel() (*models.ActivityLog, error) {
	log := &models.ActivityLog{
		ActorID:    e.ActorID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
	}
	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encode activity metadata: %w", err)
		}
		log.Metadata = datatypes.JSON(raw)
	}
	return log, nil
}
