package model

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// UserInfo là snapshot thông tin người mua tại thời điểm đặt hàng.
// Copy chứ không reference, user sửa profile sau này không ảnh hưởng đơn cũ.
type UserInfo struct {
	UserId          uint   `json:"userId"`
	Email           string `json:"email"`
	Fullname        string `json:"fullname"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type PayOnDelivery struct {
	Status      bool    `json:"status"`
	TotalAmount *string `json:"totalAmount"`
}

// OrderedProd là 1 dòng sản phẩm shop trong giỏ khi checkout
type OrderedProd struct {
	ProdId      uint    `json:"prodId"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Subcategory *string `json:"subcategory,omitempty"`
	Condition   *string `json:"condition,omitempty"`
	ImageUrl    *string `json:"imageUrl"`
	Price       string  `json:"price"` // decimal string, đã convert theo currency
	Qty         int     `json:"qty"`
}

// ProductOrderData giữ reference tới doc gốc trong collection dịch vụ
type ProductOrderData struct {
	OrderInfo     uint    `json:"orderInfo"` // id của doc trong collection OrderTitle
	PaymentStatus string  `json:"paymentStatus"`
	ToPay         *string `json:"toPay,omitempty"`
	InspectionFee *string `json:"inspectionFee,omitempty"`
}

type ProductOrder struct {
	OrderTitle string           `json:"orderTitle"` // tên collection: gamedownloads, gamerents...
	OrderData  ProductOrderData `json:"orderData"`
}

// PaymentInfo lấy từ kết quả verify của gateway {reference, channel, currency, amount}
type PaymentInfo struct {
	Gateway      string  `json:"gateway"`
	TransRef     string  `json:"transRef"`
	Method       string  `json:"method"` // channel
	Currency     string  `json:"currency"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"amount"`
	TransReceipt *string `json:"transReceipt,omitempty"`
}

type Order struct {
	DTO
	UserInfo      UserInfo       `gorm:"serializer:json;type:jsonb" json:"userInfo"`
	PayOnDelivery *PayOnDelivery `gorm:"serializer:json;type:jsonb" json:"payOnDelivery,omitempty"`
	Items         []OrderedProd  `gorm:"serializer:json;type:jsonb" json:"items,omitempty"`
	Product       *ProductOrder  `gorm:"serializer:json;type:jsonb" json:"product,omitempty"`
	Payment       *PaymentInfo   `gorm:"serializer:json;type:jsonb" json:"payment,omitempty"` // null cho tới khi gateway xác nhận
	Status        string         `gorm:"default:Pending" json:"status"`
	ToExpire      *time.Time     `json:"toExpire,omitempty"` // tới hạn thì sweep xoá đơn
}

var ErrOrderContent = errors.New("order must have exactly one of items or product")

// CheckContent đảm bảo tagged union: đúng 1 trong 2 nhánh items/product
func (o *Order) CheckContent() error {
	hasItems := len(o.Items) > 0
	if hasItems == (o.Product != nil) {
		return ErrOrderContent
	}
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	return o.CheckContent()
}

// OrderStatuses là enum trạng thái admin được phép set (gồm cả các
// trạng thái riêng của đơn dịch vụ sửa game)
var OrderStatuses = []string{
	"Pending",
	"Confirmed payment",
	"Processing",
	"Processed",
	"Delivered",
	"Completed",
	"Received",
	"Repair in progress",
	"Repair succeeded",
	"Repair failed",
	"Sent",
	"Paid",
	"Order rejected",
	"Out of stock",
}

// CanonicalOrderStatus so khớp không phân biệt hoa thường, trả về giá trị
// chuẩn trong enum. ok=false khi input nằm ngoài enum.
func CanonicalOrderStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, status := range OrderStatuses {
		if strings.EqualFold(status, s) {
			return status, true
		}
	}
	return "", false
}

// các trạng thái coi như đã hoàn tất giao nhận, xoá đơn sẽ KHÔNG tạo refund
var fulfilledStatuses = []string{"completed", "delivered", "order rejected", "sent"}

// NeedsRefundOnDelete: đơn đã thanh toán và chưa giao xong thì khi
// admin xoá phải tự tạo refund toàn đơn
func (o *Order) NeedsRefundOnDelete() bool {
	if o.Payment == nil {
		return false
	}
	status := strings.ToLower(o.Status)
	for _, s := range fulfilledStatuses {
		if s == status {
			return false
		}
	}
	return true
}

// DBCollections là allow-list tên collection cho đơn dịch vụ / sản phẩm đơn lẻ
var DBCollections = []string{"products", "gamedownloads", "gamerents", "gameswaps", "gamerepairs"}

func ValidCollection(name string) bool {
	for _, c := range DBCollections {
		if c == name {
			return true
		}
	}
	return false
}

// ===== request DTOs =====

type CheckoutUserData struct {
	Fullname        string `json:"fullname"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type CheckoutOrderData struct {
	SubTotal      *float64      `json:"subTotal,omitempty"`
	Price         *string       `json:"price,omitempty"`  // cho đơn dịch vụ, lấy theo offer hiện tại
	ProdId        *uint         `json:"prodId,omitempty"` // cho đơn dịch vụ
	InspectionFee *string       `json:"inspectionFee,omitempty"`
	PayOnDelivery bool          `json:"payOnDelivery"`
	Items         []OrderedProd `json:"items,omitempty"`
	OrderId       *uint         `json:"orderId,omitempty"` // verify đơn POD đã tồn tại
}

// CheckoutInfo là body cho verify-payment và create-pod-order
type CheckoutInfo struct {
	Reference     string            `json:"reference"`
	PaymentMethod string            `json:"paymentMethod"`
	UserData      CheckoutUserData  `json:"userData"`
	OrderData     CheckoutOrderData `json:"orderData"`
}

type UpdateOrderStatusInput struct {
	OrderProgress string `json:"orderProgress" validate:"required"`
}

// OrderInfo là payload trả về sau khi tạo / xác nhận đơn
type OrderInfo struct {
	OrderId        uint    `json:"orderId"`
	OrderNo        string  `json:"orderNo"`
	ProductDetails any     `json:"productDetails"`
	Total          float64 `json:"total"`
}
