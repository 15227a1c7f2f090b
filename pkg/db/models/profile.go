package models

import "time"

// RoleCustomer marks shopper profiles; only these feed the admin customer list.
const RoleCustomer = "customer"

// Profile is an account profile. Rows are owned by the identity provider.
type Profile struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      *string   `gorm:"column:name"`
	Email     *string   `gorm:"column:email;index"`
	Phone     *string   `gorm:"column:phone"`
	Tier      *string   `gorm:"column:tier"`
	JoinDate  *string   `gorm:"column:join_date"`
	Role      string    `gorm:"column:role;not null;default:'customer';index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
