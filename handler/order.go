package handler

import (
	"errors"
	"fmt"
	"log"

	"game_marketplace/constants"
	"game_marketplace/database"
	"game_marketplace/helper"
	"game_marketplace/model"
	"game_marketplace/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetOrders (admin) trả danh sách đơn rút gọn cho dashboard
func GetOrders(c *fiber.Ctx) error {
	var orders []model.Order
	if err := database.DB.Order("created_at desc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load orders", err)
	}

	response := []map[string]interface{}{}
	for _, order := range orders {
		response = append(response, map[string]interface{}{
			"orderId": order.ID,
			"email":   order.UserInfo.Email,
			"date":    order.CreatedAt,
			"status":  order.Status,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetOrderDetail (admin) trả chi tiết 1 đơn, giá hiển thị đã convert
// sẵn từ lúc checkout nên không convert lại lần nữa
func GetOrderDetail(c *fiber.Ctx) error {
	orderId, _ := c.Locals("inputId").(int)

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found :(", err)
	}

	orderNo := fmt.Sprintf("%d", order.ID)
	if order.Payment != nil {
		orderNo = helper.OrderNo(order.ID, order.Payment.TransRef)
	}

	var products any
	if order.Items != nil {
		products = order.Items
	} else {
		products = order.Product
	}

	response := map[string]interface{}{
		"orderId": order.ID,
		"orderNo": orderNo,
		"user": map[string]interface{}{
			"name":            order.UserInfo.Fullname,
			"email":           order.UserInfo.Email,
			"deliveryAddress": order.UserInfo.DeliveryAddress,
			"phone":           order.UserInfo.Phone,
		},
		"products": products,
		"date":     order.CreatedAt,
		"status":   order.Status,
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetMyOrders trả đơn của user đang đăng nhập
func GetMyOrders(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	var orders []model.Order
	if err := database.DB.
		Where("user_info->>'userId' = ?", fmt.Sprintf("%d", claim.UserId)).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load orders", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// UpdateOrderStatus (admin) đổi trạng thái đơn. Chỉ check membership
// trong enum (422 nếu ngoài enum), không ràng buộc thứ tự chuyển.
func UpdateOrderStatus(c *fiber.Ctx) error {
	orderId, _ := c.Locals("inputId").(int)

	var input model.UpdateOrderStatusInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order was not found :(", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	status, ok := model.CanonicalOrderStatus(input.OrderProgress)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("ERROR: Invalid input! [%s]", input.OrderProgress), nil)
	}

	if err := database.DB.Model(&order).Update("status", status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update order", err)
	}

	PublishOrderEvent(fmt.Sprintf("%d", order.ID), status)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"message": "Order status updated",
	})
}

// GetOrderProgressOptions trả enum trạng thái cho dropdown admin
func GetOrderProgressOptions(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, model.OrderStatuses)
}

// DeleteOrder (admin) xoá đơn. Đơn đã thanh toán mà chưa giao xong thì
// tự tạo refund toàn đơn với lý do "Canceled order".
func DeleteOrder(c *fiber.Ctx) error {
	orderId, _ := c.Locals("inputId").(int)

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found :(", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Delete(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete order", err)
	}

	if order.NeedsRefundOnDelete() {
		if err := createCancellationRefund(order); err != nil {
			// đơn đã xoá, refund lỗi chỉ log lại cho admin xử tay
			log.Printf("Lỗi tạo refund cho đơn huỷ %d: %v", order.ID, err)
		}
	}

	PublishOrderEvent(fmt.Sprintf("%d", order.ID), "Deleted")

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"message": "Order was deleted successfully.",
	})
}

// createCancellationRefund tạo refund toàn đơn khi admin huỷ đơn đã
// thanh toán trước lúc giao. Amount convert theo currency lúc trả tiền,
// rate snapshot trong payment không dùng lại cho refund mới.
func createCancellationRefund(order model.Order) error {
	// user đã request refund toàn đơn rồi thì không tạo chồng
	var existing model.Refund
	err := database.DB.Where("order_info = ? AND prod_id IS NULL", order.ID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var user model.User
	if err := database.DB.First(&user, order.UserInfo.UserId).Error; err != nil {
		return err
	}

	currency, err := helper.CurrencyByCode(order.Payment.Currency)
	if err != nil {
		return err
	}

	refund := model.Refund{
		UserInfo: model.RefundUserInfo{
			UserId:   user.ID,
			Email:    user.Email,
			Username: user.Username,
		},
		Amount:    helper.FormatAmount(helper.CalPrice(order.Payment.Amount, currency)),
		OrderInfo: order.ID,
		Reason:    "Canceled order",
		Progress:  "Processing",
	}
	if err := database.DB.Create(&refund).Error; err != nil {
		return err
	}

	utils.SendOrderCancelledEmail(user.Email, utils.OrderMailData{
		OrderNo:      helper.OrderNo(order.ID, order.Payment.TransRef),
		Fullname:     order.UserInfo.Fullname,
		RefundAmount: refund.Amount,
		Currency:     order.Payment.Currency,
	})

	return nil
}
