package helper

import (
	"testing"

	"game_marketplace/model"

	"github.com/stretchr/testify/assert"
)

func TestStockAdjustments(t *testing.T) {
	items := []model.OrderedProd{
		{ProdId: 1, Price: "15000", Qty: 2},
		{ProdId: 2, Price: "9000", Qty: 1},
		{ProdId: 1, Price: "15000", Qty: 3},
	}

	adjustments := StockAdjustments(items)
	assert.Equal(t, map[uint]int{1: 5, 2: 1}, adjustments)
}

func TestStockAdjustmentsEmpty(t *testing.T) {
	assert.Empty(t, StockAdjustments(nil))
}

// Trừ tồn kho chạy SAU khi đơn đã ghi: giỏ rỗng (đơn dịch vụ) là no-op
// và không được đụng tới DB. Lỗi reconcile chỉ báo lên caller, đơn đã
// tạo vẫn giữ nguyên.
func TestBalanceStockNoItems(t *testing.T) {
	assert.NoError(t, BalanceStock(nil))
	assert.NoError(t, BalanceStock([]model.OrderedProd{}))
}
