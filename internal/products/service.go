package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-admin/internal/admin"
	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
)

// Service is the plain product catalog used by the storefront client.
type Service interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, updates map[string]any) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, payload map[string]any) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ServiceParams struct {
	Repository productRepository
}

type service struct {
	repo productRepository
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: params.Repository}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	if rows == nil {
		rows = []models.Product{}
	}
	return rows, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	product := input.toModel()
	if product.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required").
			WithDetails(map[string]string{"name": "is required"})
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

// UpdateProduct applies the same field rules as the admin product update.
func (s *service) UpdateProduct(ctx context.Context, id string, updates map[string]any) (*models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	payload, err := admin.BuildProductPayload(updates)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

// DeleteProduct succeeds whether or not the product existed.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}
