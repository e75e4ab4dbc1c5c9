package model

import "strings"

// RefundUserInfo snapshot người yêu cầu refund
type RefundUserInfo struct {
	UserId   uint   `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type Refund struct {
	DTO
	UserInfo RefundUserInfo `gorm:"serializer:json;type:jsonb" json:"userInfo"`
	Amount   string         `json:"amount"` // decimal string theo currency của payment
	// prod_id NULL là refund toàn đơn: composite index không chặn được
	// 2 row NULL (postgres NULLS DISTINCT) nên cần thêm partial index
	OrderInfo   uint     `gorm:"uniqueIndex:idx_refund_order_prod;index:idx_refund_whole_order,unique,where:prod_id IS NULL" json:"orderInfo"`
	ProdId      *uint    `gorm:"uniqueIndex:idx_refund_order_prod" json:"prodId,omitempty"` // refund 1 item, nil = refund toàn đơn
	Reason      string   `json:"reason"`
	OtherReason *string  `json:"otherReason,omitempty"`
	ImageUrls   []string `gorm:"serializer:json;type:jsonb" json:"imageUrls"` // ảnh bằng chứng khách upload
	Progress    string   `gorm:"default:Refund request in review" json:"progress"`
	Status      string   `gorm:"default:Incomplete" json:"status"` // Incomplete | Completed
}

const (
	RefundStatusIncomplete = "Incomplete"
	RefundStatusCompleted  = "Completed"

	RefundProgressSucceeded = "Succeeded"
)

var RefundReasons = []string{
	"Item out of stock",
	"Canceled order",
	"Package not received",
	"Package was damaged",
	"Others",
}

var RefundProgresses = []string{
	"Refund request in review",
	"Processing",
	"Succeeded",
	"Rejected",
	"Failed",
}

func ValidRefundReason(reason string) bool {
	for _, r := range RefundReasons {
		if r == reason {
			return true
		}
	}
	return false
}

func ValidRefundProgress(progress string) bool {
	for _, p := range RefundProgresses {
		if p == progress {
			return true
		}
	}
	return false
}

// ValidOtherReason: khi reason = Others bắt buộc mô tả 20-500 ký tự
func ValidOtherReason(reason string, otherReason *string) bool {
	if reason != "Others" {
		return true
	}
	if otherReason == nil {
		return false
	}
	length := len(strings.TrimSpace(*otherReason))
	return length >= 20 && length <= 500
}

// ===== request DTOs =====

type RefundRequestInput struct {
	ProdId      *uint    `json:"prodId,omitempty"`
	Reason      string   `json:"reason" validate:"required"`
	OtherReason *string  `json:"otherReason,omitempty"`
	ImageUrls   []string `json:"imageUrls"`
	Amount      string   `json:"amount" validate:"required"`
}

type UpdateRefundProgressInput struct {
	Progress string `json:"progress" validate:"required"`
}
