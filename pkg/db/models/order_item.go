package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem is a line item snapshot nested under an order.
type OrderItem struct {
	ID          string   `gorm:"column:id;primaryKey"`
	OrderID     string   `gorm:"column:order_id;not null;index"`
	ProductID   *string  `gorm:"column:product_id"`
	ProductName *string  `gorm:"column:product_name"`
	Quantity    *int     `gorm:"column:quantity"`
	Price       *float64 `gorm:"column:price;type:numeric(12,2)"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
