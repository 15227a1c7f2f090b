package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a storefront order row. Columns written by the storefront are nullable
// and are defaulted when the admin overview normalizes them.
type Order struct {
	ID               string      `gorm:"column:id;primaryKey"`
	UserID           *string     `gorm:"column:user_id;index"`
	CustomerName     *string     `gorm:"column:customer_name"`
	CustomerEmail    *string     `gorm:"column:customer_email;index"`
	Total            *float64    `gorm:"column:total;type:numeric(12,2)"`
	Status           *string     `gorm:"column:status"`
	Date             *string     `gorm:"column:date;type:timestamptz;index"`
	ItemsCount       *int        `gorm:"column:items_count"`
	PaymentMethod    *string     `gorm:"column:payment_method"`
	ShippingAddress  *string     `gorm:"column:shipping_address"`
	TrackingNumber   *string     `gorm:"column:tracking_number"`
	Note             *string     `gorm:"column:note"`
	LastStatusChange *time.Time  `gorm:"column:last_status_change"`
	Items            []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
