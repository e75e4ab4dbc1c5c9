package handler

import (
	"errors"
	"fmt"
	"time"

	"game_marketplace/constants"
	"game_marketplace/database"
	"game_marketplace/helper"
	"game_marketplace/model"
	"game_marketplace/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetOrderRefundPreview trả thông tin đơn để frontend prefill form
// refund (sản phẩm + số tiền đã quy đổi theo currency lúc trả)
func GetOrderRefundPreview(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	orderId, _ := c.Locals("inputId").(int)

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found :(", err)
	}
	// Đơn của người khác cũng trả 404 luôn, không lộ tồn tại
	if order.UserInfo.UserId != claim.UserId {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found :(", nil)
	}

	if order.Payment == nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Order has no payment to refund", nil)
	}

	currency, err := helper.CurrencyByCode(order.Payment.Currency)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var products any
	if order.Items != nil {
		products = order.Items
	} else {
		products = order.Product
	}

	return utils.SuccessResponse(c, fiber.StatusOK, map[string]interface{}{
		"orderId":  order.ID,
		"orderNo":  helper.OrderNo(order.ID, order.Payment.TransRef),
		"products": products,
		"amount":   helper.FormatAmount(helper.CalPrice(order.Payment.Amount, currency)),
		"currency": order.Payment.Currency,
		"reasons":  model.RefundReasons,
	})
}

// RequestRefund tạo yêu cầu refund cho đơn của chính user.
// Mỗi đơn chỉ được 1 yêu cầu refund toàn đơn → trùng thì 409.
func RequestRefund(c *fiber.Ctx) error {
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	orderId, _ := c.Locals("inputId").(int)

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found :(", err)
	}
	if order.UserInfo.UserId != claim.UserId {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found :(", nil)
	}

	var input model.RefundRequestInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	if !model.ValidRefundReason(input.Reason) {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("ERROR: Invalid reason! [%s]", input.Reason), nil)
	}
	if !model.ValidOtherReason(input.Reason, input.OtherReason) {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Please describe your reason (20-500 characters)", nil)
	}
	if !helper.ValidPriceFormat(input.Amount) {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "ERROR: Invalid amount format!", nil)
	}

	// Refund toàn đơn: check trùng trước khi ghi
	if input.ProdId == nil {
		var existing model.Refund
		err := database.DB.Where("order_info = ? AND prod_id IS NULL", order.ID).First(&existing).Error
		if err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "A refund request for this order already exists", nil)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	refund := model.Refund{
		UserInfo: model.RefundUserInfo{
			UserId:   user.ID,
			Email:    user.Email,
			Username: user.Username,
		},
		Amount:      input.Amount,
		OrderInfo:   order.ID,
		ProdId:      input.ProdId,
		Reason:      input.Reason,
		OtherReason: input.OtherReason,
		ImageUrls:   input.ImageUrls,
	}
	if err := database.DB.Create(&refund).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create refund request", err)
	}

	// Đơn đang chờ refund thì ngưng đếm hạn xoá
	if order.ToExpire != nil {
		if err := database.DB.Model(&order).Update("to_expire", nil).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update order", err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"success":  true,
		"message":  "Refund request submitted",
		"refundId": refund.ID,
	})
}

// UploadRefundEvidence nhận ảnh bằng chứng, đẩy lên Cloudinary rồi trả URL
func UploadRefundEvidence(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse multipart form", err)
	}

	files := form.File["images"]
	if len(files) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No image was uploaded", nil)
	}

	urls := []string{}
	for _, file := range files {
		url, err := helper.UploadRefundEvidence(c.Context(), file)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload image", err)
		}
		urls = append(urls, url)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"imageUrls": urls})
}

// GetMyRefundInfo trả các refund của user đang đăng nhập
func GetMyRefundInfo(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	var refunds []model.Refund
	if err := database.DB.
		Where("user_info->>'userId' = ?", fmt.Sprintf("%d", claim.UserId)).
		Order("created_at desc").
		Find(&refunds).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load refunds", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, refunds)
}

// GetRefunds (admin) liệt kê refund, filter theo status qua query
func GetRefunds(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var refunds []model.Refund
	if err := query.Find(&refunds).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load refunds", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, refunds)
}

// GetRefundInfo (admin) chi tiết 1 refund
func GetRefundInfo(c *fiber.Ctx) error {
	refundId, _ := c.Locals("inputId").(int)

	var refund model.Refund
	if err := database.DB.First(&refund, refundId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Refund not found :(", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, refund)
}

// UpdateRefundProgress (admin) đổi tiến độ refund. Succeeded thì đóng
// refund (Completed) và hẹn giờ xoá đơn gốc ngay.
func UpdateRefundProgress(c *fiber.Ctx) error {
	refundId, _ := c.Locals("inputId").(int)

	var input model.UpdateRefundProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	if !model.ValidRefundProgress(input.Progress) {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("ERROR: Invalid input! [%s]", input.Progress), nil)
	}

	var refund model.Refund
	if err := database.DB.First(&refund, refundId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Refund not found :(", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	refund.Progress = input.Progress
	if input.Progress == model.RefundProgressSucceeded {
		refund.Status = model.RefundStatusCompleted

		// Refund xong thì đơn gốc đem đi sweep luôn
		now := time.Now()
		if err := database.DB.Model(&model.Order{}).
			Where("id = ?", refund.OrderInfo).
			Update("to_expire", now).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update order", err)
		}
	}

	if err := database.DB.Save(&refund).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update refund", err)
	}

	utils.SendRefundProgressEmail(refund.UserInfo.Email, refund.ID, refund.Progress)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"message": "Refund progress updated",
	})
}
