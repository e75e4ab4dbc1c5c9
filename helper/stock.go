package helper

import (
	"fmt"
	"log"

	"game_marketplace/database"
	"game_marketplace/model"

	"gorm.io/gorm"
)

// StockAdjustments map lượng đặt mua theo prodId để trừ tồn kho.
// Cùng prodId xuất hiện nhiều dòng thì qty cộng dồn.
func StockAdjustments(items []model.OrderedProd) map[uint]int {
	qtyByProd := make(map[uint]int, len(items))
	for _, item := range items {
		qtyByProd[item.ProdId] += item.Qty
	}
	return qtyByProd
}

// BalanceStock trừ tồn kho sau khi đơn + payment đã ghi xong.
// Chạy sau nên lỗi ở đây chỉ log và báo lên caller, KHÔNG rollback
// đơn đã tạo.
func BalanceStock(items []model.OrderedProd) error {
	if len(items) == 0 {
		return nil
	}

	qtyByProd := StockAdjustments(items)
	ids := make([]uint, 0, len(qtyByProd))
	for id := range qtyByProd {
		ids = append(ids, id)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var products []model.Product
		if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}

		for _, prod := range products {
			orderedQty := qtyByProd[prod.ID]
			if err := tx.Model(&model.Product{}).
				Where("id = ?", prod.ID).
				Update("stock_qty", prod.StockQty-orderedQty).Error; err != nil {
				return fmt.Errorf("balance stock for product %d: %w", prod.ID, err)
			}
		}
		return nil
	})

	if err != nil {
		log.Printf("Lỗi trừ tồn kho: %v", err)
	}
	return err
}
