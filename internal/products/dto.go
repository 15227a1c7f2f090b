package products

import (
	"strings"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
)

// CreateProductInput is the catalog create body. The two renamed columns use
// the storefront client's camelCase names.
type CreateProductInput struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty" validate:"omitempty,max=128"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" validate:"omitempty,min=0"`
	Stock         *int     `json:"stock,omitempty" validate:"omitempty,min=0,max=2147483647"`
	SoldCount     *int     `json:"soldCount,omitempty" validate:"omitempty,min=0,max=2147483647"`
	Image         *string  `json:"image,omitempty"`
}

func (in CreateProductInput) toModel() *models.Product {
	return &models.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Category:      in.Category,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Stock:         in.Stock,
		SoldCount:     in.SoldCount,
		Image:         in.Image,
	}
}
