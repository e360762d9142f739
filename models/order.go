package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Order is an immutable record created from a cart line or a direct
// request. PENDING is the only status that permits update or delete.
type Order struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	User      User        `gorm:"foreignKey:UserID" json:"-"`
	ProductID uint        `gorm:"not null;index" json:"product_id"`
	Product   Product     `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int         `gorm:"not null;default:1" json:"quantity"`
	Status    OrderStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`

	StreetAddress string `gorm:"not null" json:"street_address"`
	CityID        uint   `gorm:"not null" json:"city_id"`
	City          City   `gorm:"foreignKey:CityID;constraint:OnDelete:CASCADE" json:"-"`
	// Denormalized from City for query convenience; always equals
	// City.StateID.
	StateID     uint   `gorm:"not null" json:"state_id"`
	State       State  `gorm:"foreignKey:StateID" json:"-"`
	PostalCode  string `gorm:"not null" json:"postal_code"`
	PhoneNumber string `gorm:"not null" json:"phone_number"`

	// Computed on read from the product's current effective price,
	// never stored.
	TotalCost float64 `gorm:"-" json:"total_cost"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeTotal fills TotalCost from the preloaded product.
func (o *Order) ComputeTotal() {
	o.TotalCost = float64(o.Quantity) * o.Product.EffectiveUnitPrice()
}

// ValidStatus reports whether s is one of the declared order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
