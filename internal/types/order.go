package types

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is a closed enumeration. Transitions between statuses are
// deliberately unvalidated; only membership is enforced.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Status    OrderStatus    `gorm:"not null;default:'PENDING'" json:"status"`
	ClientID  *uint          `json:"clientId,omitempty"`
	Client    *Client        `gorm:"foreignKey:ClientID;references:ID" json:"client,omitempty"`
	Lines     []OrderLine    `gorm:"foreignKey:OrderID;references:ID" json:"lines,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Order) TableName() string { return "order" }
