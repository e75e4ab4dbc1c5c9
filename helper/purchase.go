package helper

import (
	"log"
	"time"

	"game_marketplace/constants"
	"game_marketplace/database"
	"game_marketplace/model"
)

// RecordPurchase append lịch sử mua hàng + cộng XP loyalty sau mỗi lần
// reconcile thành công. Side effect chạy sau khi đơn đã durable, không
// block response.
func RecordPurchase(userId uint, products any, totalAmount float64) {
	var user model.User
	if err := database.DB.First(&user, userId).Error; err != nil {
		log.Printf("Lỗi load user %d khi ghi purchase history: %v", userId, err)
		return
	}

	user.PurchaseHistory = append(user.PurchaseHistory, model.PurchaseInfo{
		Date:        time.Now(),
		Products:    products,
		TotalAmount: FormatAmount(totalAmount),
	})
	user.XP += constants.PURCHASE_XP_REWARD

	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("Lỗi cập nhật purchase history cho user %d: %v", userId, err)
	}
}
