package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
)

const defaultPublishTimeout = 5 * time.Second

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

// NewPubSubPublisher adapts a Pub/Sub publisher. A nil publisher yields nil,
// which disables streaming.
func NewPubSubPublisher(p *gcppubsub.Publisher) publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{Publisher: p}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return &gcpPublishResult{PublishResult: p.Publisher.Publish(ctx, msg)}
}

type gcpPublishResult struct {
	*gcppubsub.PublishResult
}

func (r *gcpPublishResult) Get(ctx context.Context) (string, error) {
	if r == nil || r.PublishResult == nil {
		return "", errors.New("publish result is nil")
	}
	return r.PublishResult.Get(ctx)
}

func activityMessage(log *models.ActivityLog) (*gcppubsub.Message, error) {
	data, err := json.Marshal(log)
	if err != nil {
		return nil, fmt.Errorf("encode activity message: %w", err)
	}
	return &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"action":      log.Action,
			"entity_type": log.EntityType,
			"entity_id":   log.EntityID,
		},
	}, nil
}

func publish(ctx context.Context, pub publisher, log *models.ActivityLog) error {
	msg, err := activityMessage(log)
	if err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	result := pub.Publish(publishCtx, msg)
	if result == nil {
		return errors.New("publisher returned nil result")
	}
	if _, err := result.Get(publishCtx); err != nil {
		return fmt.Errorf("publish activity %s: %w", log.ID, err)
	}
	return nil
}
