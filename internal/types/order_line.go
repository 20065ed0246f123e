package types

// OrderLine joins an order to a product with a quantity. The product
// reference is historical: it survives the product being soft-deleted.
// Lines carry no tombstone of their own; they are reached only through
// their order.
type OrderLine struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"not null;index" json:"orderId"`
	ProductID uint     `gorm:"not null" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
	Count     int      `gorm:"not null" json:"count"`
}

func (OrderLine) TableName() string { return "order_line" }
