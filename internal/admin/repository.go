package admin

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-admin/pkg/db"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"gorm.io/gorm"
)

// Store is the data access the admin service needs. Mutations return nil when
// the re-read finds no row.
type Store interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListCustomerProfiles(ctx context.Context) ([]models.Profile, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id string, payload map[string]any) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, payload map[string]any) (*models.Order, error)
}

// Repository is the GORM-backed Store.
type Repository struct {
	client *db.Client
}

// NewRepository builds a repository on the shared db client.
func NewRepository(client *db.Client) (*Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &Repository{client: client}, nil
}

// ListOrders returns every order with its line items, newest first.
func (r *Repository) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.client.DB().WithContext(ctx).
		Preload("Items").
		Order("date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) ListCustomerProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.client.DB().WithContext(ctx).
		Where("role = ?", models.RoleCustomer).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.client.DB().WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateProduct writes payload columns to the product and re-reads it in the
// same transaction.
func (r *Repository) UpdateProduct(ctx context.Context, id string, payload map[string]any) (*models.Product, error) {
	var updated *models.Product
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(payload).Error; err != nil {
			return err
		}
		var rows []models.Product
		if err := tx.Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 1 {
			updated = &rows[0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes the product. Deleting a missing id is not an error.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	return r.client.DB().WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// UpdateOrderStatus writes the status payload and re-reads the order with its
// line items.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id string, payload map[string]any) (*models.Order, error) {
	var updated *models.Order
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(payload).Error; err != nil {
			return err
		}
		var rows []models.Order
		if err := tx.Preload("Items").Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 1 {
			updated = &rows[0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
