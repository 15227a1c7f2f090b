package activity

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Recorder is the audit sink the admin mutations write to.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

type activityRepository interface {
	Insert(ctx context.Context, log *models.ActivityLog) error
}

type ServiceParams struct {
	Repository activityRepository
	// Publisher is optional; entries are only stored when it is nil.
	Publisher publisher
}

type service struct {
	repo      activityRepository
	publisher publisher
}

// NewService builds the activity recorder.
func NewService(params ServiceParams) (Recorder, error) {
	if params.Repository == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	return &service{repo: params.Repository, publisher: params.Publisher}, nil
}

// Record stores the entry and streams it when a publisher is configured. The
// publish is attempted even when the insert fails; both errors are returned.
func (s *service) Record(ctx context.Context, entry Entry) error {
	if err := entry.validate(); err != nil {
		return err
	}
	log, err := entry.toModel()
	if err != nil {
		return err
	}
	log.ID = uuid.Must(uuid.NewV7()).String()

	var errs error
	if err := s.repo.Insert(ctx, log); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("insert activity: %w", err))
	}
	if s.publisher != nil {
		errs = multierr.Append(errs, publish(ctx, s.publisher, log))
	}
	return errs
}
