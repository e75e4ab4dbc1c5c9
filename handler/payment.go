package handler

import (
	"errors"
	"fmt"
	"math"

	"game_marketplace/constants"
	"game_marketplace/database"
	"game_marketplace/helper"
	"game_marketplace/model"
	"game_marketplace/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// paymentVerifier tách client gateway khỏi flow reconcile để stub được
// khi test. Production luôn dùng Paystack.
type paymentVerifier interface {
	Verify(reference string) (*model.TransInfo, error)
}

var newPaymentVerifier = func() paymentVerifier { return NewPaystack() }

// InitializePayment tạo transaction paystack cho checkout "pay now",
// client dùng accessCode để mở popup thanh toán
func InitializePayment(c *fiber.Ctx) error {
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	var input model.InitPayInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	paystack := NewPaystack()
	initRes, err := paystack.Initialize(input.Email, input.Amount)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to initialize transaction", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"accessCode": initRes.AccessCode,
		"reference":  initRes.Reference,
		"email":      user.Email,
	})
}

// VerifyPayment là entry point reconcile thanh toán.
// USE CASES: 1.verify + tạo đơn mới | 2.verify cho đơn POD đã tồn tại
// Query ?cname=<collection> cho đơn dịch vụ (use case 1).
func VerifyPayment(c *fiber.Ctx) error {
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	var checkout model.CheckoutInfo
	if err := c.BodyParser(&checkout); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	if checkout.Reference == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed: invalid transaction reference.", nil)
	}

	collectionName := c.Query("cname")

	// verify với gateway, gọi đúng 1 lần cho mỗi lần reconcile
	gateway := newPaymentVerifier()
	transInfo, err := gateway.Verify(checkout.Reference)
	if err != nil {
		// lỗi transport/parse: propagate, không đụng vào đơn
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Payment verification failed", err)
	}

	// gateway từ chối: trả nguyên payload, tuyệt đối không tạo đơn
	if !transInfo.Accepted {
		return c.Status(fiber.StatusInternalServerError).JSON(transInfo)
	}

	currency, err := helper.DefaultCurrency()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// gateway báo amount theo minor units (kobo)
	actualAmount := math.Round(float64(transInfo.Data.Amount) / 100)
	paymentData := model.PaymentInfo{
		Gateway:  "Paystack",
		TransRef: checkout.Reference,
		Method:   transInfo.Data.Channel,
		Currency: transInfo.Data.Currency,
		Rate:     currency.Rate,
		Amount:   actualAmount,
	}

	// use case 2: đơn POD có sẵn, giờ mới thanh toán
	if checkout.OrderData.OrderId != nil {
		return completePodPayment(c, user, *checkout.OrderData.OrderId, paymentData, transInfo)
	}

	// use case 1: verify xong mới tạo đơn
	userInfo := model.UserInfo{
		UserId:          claim.UserId,
		Email:           checkout.UserData.Email,
		Fullname:        checkout.UserData.Fullname,
		Phone:           checkout.UserData.Phone,
		DeliveryAddress: checkout.UserData.DeliveryAddress,
	}

	if err := helper.ValidateCheckout(checkout); err != nil {
		var missing *helper.MissingFieldError
		if errors.As(err, &missing) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusUnprocessableEntity, "Missing required checkout field", err, missing.Field)
		}
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Invalid checkout payload", err)
	}

	orderInfo, err := helper.CreateOrder(userInfo, checkout, paymentData, collectionName)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create order", err)
	}

	// trừ tồn kho SAU khi đơn + payment đã durable. Lỗi ở đây chỉ báo
	// lên response, không rollback đơn đã tạo.
	var stockErr error
	if len(checkout.OrderData.Items) > 0 {
		stockErr = helper.BalanceStock(checkout.OrderData.Items)
	}

	// side effects không block response
	go helper.RecordPurchase(user.ID, orderInfo.ProductDetails, paymentData.Amount)
	utils.SendOrderConfirmationEmail(userInfo.Email, utils.OrderMailData{
		OrderNo:     orderInfo.OrderNo,
		Fullname:    userInfo.Fullname,
		TotalAmount: helper.FormatAmount(orderInfo.Total),
		Currency:    paymentData.Currency,
		PaymentRef:  paymentData.TransRef,
	})
	PublishOrderEvent(fmt.Sprintf("%d", orderInfo.OrderId), "Pending")

	response := fiber.Map{"orderInfo": orderInfo, "transInfo": transInfo}
	if stockErr != nil {
		response["stockError"] = stockErr.Error()
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

// completePodPayment xác nhận thanh toán online cho đơn tạo từ
// create-pod-order
func completePodPayment(c *fiber.Ctx, user model.User, orderId uint, paymentData model.PaymentInfo, transInfo *model.TransInfo) error {
	var foundOrder model.Order
	if err := database.DB.First(&foundOrder, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order was not found!", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	foundOrder.Status = "Completed"

	var products any
	// items nil nghĩa là đơn dịch vụ, không phải shop product
	if foundOrder.Product != nil {
		price := foundOrder.Product.OrderData.ToPay
		foundOrder.Product.OrderData.ToPay = nil
		foundOrder.Product.OrderData.PaymentStatus = "Paid"
		foundOrder.Payment = &paymentData

		productDetails := map[string]any{}
		if doc, err := helper.LookupCollectionDoc(foundOrder.Product.OrderTitle, foundOrder.Product.OrderData.OrderInfo); err == nil {
			productDetails = doc
		}
		if price != nil {
			productDetails["price"] = *price
		}
		products = productDetails
	} else {
		products = foundOrder.Items
		foundOrder.PayOnDelivery = nil
		foundOrder.Payment = &paymentData
	}

	if err := database.DB.Save(&foundOrder).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update order", err)
	}

	orderInfo := model.OrderInfo{
		OrderId:        foundOrder.ID,
		OrderNo:        helper.OrderNo(foundOrder.ID, paymentData.TransRef),
		ProductDetails: products,
		Total:          paymentData.Amount,
	}

	go helper.RecordPurchase(user.ID, products, paymentData.Amount)
	utils.SendOrderConfirmationEmail(foundOrder.UserInfo.Email, utils.OrderMailData{
		OrderNo:     orderInfo.OrderNo,
		Fullname:    foundOrder.UserInfo.Fullname,
		TotalAmount: helper.FormatAmount(orderInfo.Total),
		Currency:    paymentData.Currency,
		PaymentRef:  paymentData.TransRef,
	})
	PublishOrderEvent(fmt.Sprintf("%d", foundOrder.ID), foundOrder.Status)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"orderInfo": orderInfo, "transInfo": transInfo})
}

// VerifyOfflinePayment xác nhận thanh toán chuyển khoản/bank transfer
// cho đơn POD, admin đối chiếu receipt thủ công
func VerifyOfflinePayment(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	var input model.VerifyOfflineInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	var foundOrder model.Order
	if err := database.DB.First(&foundOrder, input.OrderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order was not found!", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// chuyển khoản không có reference từ gateway, tự sinh để đối soát
	paymentInfo := model.PaymentInfo{
		TransRef:     "offline-" + uuid.NewString(),
		TransReceipt: &input.Receipt,
		Currency:     model.NativeCurrency,
		Method:       "transfer",
		Amount:       input.Total,
	}

	if foundOrder.Product != nil {
		foundOrder.Product.OrderData.ToPay = nil
		foundOrder.Product.OrderData.PaymentStatus = "Paid"
	}
	foundOrder.PayOnDelivery = nil
	foundOrder.Payment = &paymentInfo
	foundOrder.Status = "Completed"

	if err := database.DB.Save(&foundOrder).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Payment verification failed!", err)
	}

	var prodData any
	if foundOrder.Product != nil {
		prodData = foundOrder.Product
	} else {
		prodData = foundOrder.Items
	}

	// cộng XP + lịch sử mua cho chủ đơn, không phải admin đang verify
	go helper.RecordPurchase(foundOrder.UserInfo.UserId, prodData, paymentInfo.Amount)
	PublishOrderEvent(fmt.Sprintf("%d", foundOrder.ID), foundOrder.Status)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"message": "Order completed successfully.",
	})
}
