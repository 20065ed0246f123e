package types

import (
	"time"

	"gorm.io/gorm"

	"github.com/shopdesk/backoffice/internal/money"
)

type Product struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	SKU             string         `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Name            string         `gorm:"not null" json:"name"`
	Description     *string        `json:"description"`
	Price           money.Amount   `gorm:"type:decimal(10,2);not null" json:"price"`
	InStock         int            `gorm:"not null" json:"inStock"`
	PictureFilename *string        `json:"pictureFilename"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Product) TableName() string { return "product" }

// ProductSortable maps the sort fields the API accepts for product listings
// to their column names.
var ProductSortable = map[string]string{
	"sku":     "sku",
	"name":    "name",
	"price":   "price",
	"inStock": "in_stock",
}

// ProductSearchColumns are the text columns matched by the free-text query
// parameter.
var ProductSearchColumns = []string{"name", "sku"}
