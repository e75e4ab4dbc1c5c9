package handler

import (
	"fmt"
	"net/http"
	"testing"

	"game_marketplace/middleware"
	"game_marketplace/model"
	"game_marketplace/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderApp() *fiber.App {
	app := fiber.New()
	app.Delete("/order/:orderId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("orderId"), DeleteOrder)
	return app
}

// Huỷ đơn đã thanh toán chưa giao xong: tự tạo refund toàn đơn với lý
// do "Canceled order", progress bắt đầu từ Processing
func TestDeleteOrderCreatesCancellationRefund(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "admin")
	buyer := seedUser(t, db, "standard")
	seedNGN(t, db)
	order := seedPaidOrder(t, db, buyer, "Processing")

	req := jsonRequest("DELETE", fmt.Sprintf("/order/%d", order.ID), nil)
	req.Header.Set("Authorization", authHeader(t, admin))

	res, err := orderApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var refunds []model.Refund
	require.NoError(t, db.Where("order_info = ?", order.ID).Find(&refunds).Error)
	require.Len(t, refunds, 1)
	assert.Nil(t, refunds[0].ProdId)
	assert.Equal(t, "Canceled order", refunds[0].Reason)
	assert.Equal(t, "Processing", refunds[0].Progress)
	assert.Equal(t, "15000", refunds[0].Amount)
}

// Đơn đã Delivered coi như giao xong, xoá không được tạo refund
func TestDeleteOrderFulfilledNoRefund(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "admin")
	buyer := seedUser(t, db, "standard")
	seedNGN(t, db)
	order := seedPaidOrder(t, db, buyer, "Delivered")

	req := jsonRequest("DELETE", fmt.Sprintf("/order/%d", order.ID), nil)
	req.Header.Set("Authorization", authHeader(t, admin))

	res, err := orderApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var refundCount int64
	db.Model(&model.Refund{}).Count(&refundCount)
	assert.Zero(t, refundCount)

	var orderCount int64
	db.Model(&model.Order{}).Where("id = ?", order.ID).Count(&orderCount)
	assert.Zero(t, orderCount)
}

// User đã tự request refund toàn đơn rồi thì huỷ đơn không chồng thêm
// refund thứ 2 cho cùng 1 đơn
func TestDeleteOrderKeepsSingleWholeOrderRefund(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "admin")
	buyer := seedUser(t, db, "standard")
	seedNGN(t, db)
	order := seedPaidOrder(t, db, buyer, "Processing")

	existing := model.Refund{
		UserInfo:  model.RefundUserInfo{UserId: buyer.ID, Email: buyer.Email, Username: buyer.Username},
		Amount:    "15000",
		OrderInfo: order.ID,
		Reason:    "Package was damaged",
	}
	require.NoError(t, db.Create(&existing).Error)

	req := jsonRequest("DELETE", fmt.Sprintf("/order/%d", order.ID), nil)
	req.Header.Set("Authorization", authHeader(t, admin))

	res, err := orderApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var refunds []model.Refund
	require.NoError(t, db.Where("order_info = ?", order.ID).Find(&refunds).Error)
	require.Len(t, refunds, 1)
	assert.Equal(t, "Package was damaged", refunds[0].Reason)
}

// Schema cũng phải tự chặn refund toàn đơn thứ 2: prod_id NULL không
// được thoát unique nhờ NULLS DISTINCT
func TestWholeOrderRefundUniquePerOrder(t *testing.T) {
	db := setupTestDB(t)

	first := model.Refund{Amount: "5000", OrderInfo: 7, Reason: "Canceled order"}
	require.NoError(t, db.Create(&first).Error)

	dup := model.Refund{Amount: "5000", OrderInfo: 7, Reason: "Package not received"}
	assert.Error(t, db.Create(&dup).Error)

	// refund theo từng item vẫn đi qua bình thường
	prodA, prodB := uint(1), uint(2)
	require.NoError(t, db.Create(&model.Refund{Amount: "1000", OrderInfo: 7, ProdId: &prodA, Reason: "Package was damaged"}).Error)
	require.NoError(t, db.Create(&model.Refund{Amount: "1000", OrderInfo: 7, ProdId: &prodB, Reason: "Package was damaged"}).Error)
}
