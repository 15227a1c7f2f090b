package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-admin/internal/activity"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/angelmondragon/storefront-admin/pkg/logger"
	"github.com/angelmondragon/storefront-admin/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Service exposes the admin dashboard and its write-through mutations.
type Service interface {
	Overview(ctx context.Context) (*AdminOverviewResponse, error)
	UpdateProduct(ctx context.Context, id string, updates map[string]any, actorID string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id, actorID string) error
	UpdateOrderStatus(ctx context.Context, id, status, actorID, note string) (*AdminOrder, error)
}

type ServiceParams struct {
	Store    Store
	Activity activity.Recorder
	Options  Options
	Logger   *logger.Logger
	Metrics  *metrics.AdminMetrics
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type service struct {
	store    Store
	activity activity.Recorder
	opts     Options
	logg     *logger.Logger
	metrics  *metrics.AdminMetrics
	now      func() time.Time
}

// NewService constructs the admin service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("admin store required")
	}
	if params.Activity == nil {
		return nil, fmt.Errorf("activity recorder required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		store:    params.Store,
		activity: params.Activity,
		opts:     params.Options.withDefaults(),
		logg:     logg,
		metrics:  params.Metrics,
		now:      clock,
	}, nil
}

// Overview fetches orders, customer profiles and products concurrently and
// derives the dashboard. Any failed read fails the whole overview; the other
// reads are left to finish.
func (s *service) Overview(ctx context.Context) (*AdminOverviewResponse, error) {
	started := time.Now()
	now := s.now()

	var (
		orders   []models.Order
		profiles []models.Profile
		products []models.Product
		g        errgroup.Group
	)
	g.Go(func() error {
		rows, err := s.store.ListOrders(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
		}
		orders = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.ListCustomerProfiles(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customers")
		}
		profiles = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.ListProducts(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		products = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		s.metrics.IncOverviewFailure()
		s.logg.Error(ctx, "admin overview failed", err)
		return nil, err
	}

	collisions := DisplayIDCollisions(profiles, s.opts)
	s.metrics.SetDisplayIDCollisions(len(collisions))
	if len(collisions) > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "display_id_collisions", len(collisions)), "customer display ids are not unique")
	}

	overview := ComposeOverview(orders, profiles, products, now, s.opts)
	s.metrics.ObserveOverview(time.Since(started))
	return &overview, nil
}

// UpdateProduct writes the translated payload and returns the re-read row,
// or nil when no product has that id.
func (s *service) UpdateProduct(ctx context.Context, id string, updates map[string]any, actorID string) (*models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	payload, err := BuildProductPayload(updates)
	if err != nil {
		return nil, err
	}

	product, err := s.store.UpdateProduct(ctx, id, payload)
	if err != nil {
		s.metrics.IncMutation(models.ActionUpdateProduct, metrics.ResultError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	s.metrics.IncMutation(models.ActionUpdateProduct, mutationResult(product != nil))

	s.audit(ctx, activity.Entry{
		ActorID:    activity.ActorRef(actorID),
		Action:     models.ActionUpdateProduct,
		EntityType: models.EntityProduct,
		EntityID:   id,
		Metadata:   payload,
	})
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id, actorID string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		s.metrics.IncMutation(models.ActionDeleteProduct, metrics.ResultError)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	s.metrics.IncMutation(models.ActionDeleteProduct, metrics.ResultSuccess)

	s.audit(ctx, activity.Entry{
		ActorID:    activity.ActorRef(actorID),
		Action:     models.ActionDeleteProduct,
		EntityType: models.EntityProduct,
		EntityID:   id,
	})
	return nil
}

// UpdateOrderStatus stamps the new status and returns the normalized order,
// or nil when no order has that id.
func (s *service) UpdateOrderStatus(ctx context.Context, id, status, actorID, note string) (*AdminOrder, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if strings.TrimSpace(status) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status required")
	}

	order, err := s.store.UpdateOrderStatus(ctx, id, BuildStatusPayload(status, note, s.now()))
	if err != nil {
		s.metrics.IncMutation(models.ActionUpdateStatus, metrics.ResultError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	s.metrics.IncMutation(models.ActionUpdateStatus, mutationResult(order != nil))

	s.audit(ctx, activity.Entry{
		ActorID:    activity.ActorRef(actorID),
		Action:     models.ActionUpdateStatus,
		EntityType: models.EntityOrder,
		EntityID:   id,
		Metadata:   map[string]any{"status": status},
	})

	if order == nil {
		return nil, nil
	}
	normalized := NormalizeOrder(*order, s.opts)
	return &normalized, nil
}

// audit waits for the recorder but never fails the mutation; failures only
// reach logs and metrics.
func (s *service) audit(ctx context.Context, entry activity.Entry) {
	if err := s.activity.Record(ctx, entry); err != nil {
		s.metrics.IncAuditFailure(entry.Action)
		fields := pkgerrors.Dump(err).Fields()
		fields["action"] = entry.Action
		fields["entity_id"] = entry.EntityID
		s.logg.Warn(s.logg.WithFields(ctx, fields), "admin activity not recorded")
	}
}

func mutationResult(found bool) string {
	if found {
		return metrics.ResultSuccess
	}
	return metrics.ResultNotFound
}
