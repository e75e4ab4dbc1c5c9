package model

import "time"

type CartItem struct {
	ProdId uint `json:"prodId"`
	Qty    int  `json:"qty"`
}

// PurchaseInfo là 1 entry lịch sử mua hàng, Products giữ snapshot
// nội dung đã mua (mảng items hoặc object product dịch vụ)
type PurchaseInfo struct {
	Date        time.Time `json:"date"`
	Products    any       `json:"products"`
	TotalAmount string    `json:"totalAmount"`
}

type User struct {
	DTO
	Username        string         `gorm:"unique;not null" json:"username"`
	Email           string         `gorm:"unique;not null" json:"email"`
	Password        string         `json:"-"`
	Fullname        string         `json:"fullname"`
	Phone           string         `json:"phone"`
	DeliveryAddress string         `json:"deliveryAddress"`
	Role            string         `gorm:"default:standard" json:"role"`
	XP              int            `gorm:"default:0" json:"xp"` // điểm loyalty
	Cart            []CartItem     `gorm:"serializer:json;type:jsonb" json:"cart"`
	PurchaseHistory []PurchaseInfo `gorm:"serializer:json;type:jsonb" json:"purchaseHistory"`
	Active          bool           `gorm:"default:true" json:"active"`
}

type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=32"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Fullname        string `json:"fullname" validate:"required"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EditCartInput struct {
	ProdId uint `json:"prodId" validate:"required,gt=0"`
	Qty    int  `json:"qty" validate:"required,gt=0"`
}
