package types

import "time"

// Client is the contact record captured with an order. Each client row is
// owned by exactly one order; rows are never shared or deduplicated.
type Client struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"not null" json:"email"`
	PhoneNumber string    `gorm:"not null" json:"phoneNumber"`
	Address     string    `gorm:"not null" json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Client) TableName() string { return "client" }
