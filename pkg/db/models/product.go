package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog listing managed from the back office.
type Product struct {
	ID            string    `gorm:"column:id;primaryKey" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Description   *string   `gorm:"column:description" json:"description,omitempty"`
	Category      *string   `gorm:"column:category" json:"category,omitempty"`
	Price         *float64  `gorm:"column:price;type:numeric(12,2)" json:"price"`
	OriginalPrice *float64  `gorm:"column:originalprice;type:numeric(12,2)" json:"originalprice,omitempty"`
	Stock         *int      `gorm:"column:stock" json:"stock"`
	SoldCount     *int      `gorm:"column:sold_count" json:"sold_count"`
	Image         *string   `gorm:"column:image" json:"image,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductColumns lists the columns an admin product update may write.
var ProductColumns = map[string]struct{}{
	"name":          {},
	"description":   {},
	"category":      {},
	"price":         {},
	"originalprice": {},
	"stock":         {},
	"sold_count":    {},
	"image":         {},
}
