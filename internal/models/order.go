package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed order with its pricing snapshot.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	Status         string         `gorm:"index;not null" json:"status"` // Pending / Shipped / Delivered
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`
	ShippingFee    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	CouponCode     string         `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	ShippingName   string         `gorm:"type:varchar(200)" json:"shipping_name"`
	ShippingEmail  string         `gorm:"type:varchar(200);index" json:"shipping_email"`
	ShippingPhone  string         `gorm:"type:varchar(50)" json:"shipping_phone"`
	ShippingAddr   string         `gorm:"type:text" json:"shipping_address"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
