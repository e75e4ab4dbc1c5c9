package handler

import (
	"fmt"

	"game_marketplace/constants"
	"game_marketplace/database"
	"game_marketplace/helper"
	"game_marketplace/model"
	"game_marketplace/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// CreatePodOrder tạo đơn pay-on-delivery, payment để null tới khi
// khách thanh toán (online qua VerifyPayment hoặc offline).
// USE CASES: 1.đơn POD cho giỏ hàng shop | 2.đơn POD cho dịch vụ game
func CreatePodOrder(c *fiber.Ctx) error {
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	// cname nằm trong path, fallback query cho client cũ
	cname := c.Params("cname")
	if cname == "" {
		cname = c.Query("cname")
	}

	// chặn collection lạ TRƯỚC khi ghi bất cứ thứ gì
	if !model.ValidCollection(cname) {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Error: Invalid url params!", fmt.Errorf("unknown collection %q", cname))
	}

	var checkout model.CheckoutInfo
	if err := c.BodyParser(&checkout); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	orderData := checkout.OrderData

	// snapshot thông tin người mua, copy chứ không reference
	var userInfo model.UserInfo
	copier.Copy(&userInfo, &checkout.UserData)
	userInfo.UserId = claim.UserId

	var totalAmount *string
	if orderData.SubTotal != nil {
		totalAmount = utils.Ptr(helper.FormatAmount(*orderData.SubTotal))
	} else if orderData.Price != nil {
		totalAmount = orderData.Price
	}
	pod := model.PayOnDelivery{
		Status:      true,
		TotalAmount: totalAmount,
	}

	inspectionFee := orderData.InspectionFee
	if checkout.Reference != "" {
		// body có reference nghĩa là inspection fee đã thanh toán
		inspectionFee = utils.Ptr("Paid")
	}

	// items nil thì đây là đơn dịch vụ, không phải shop product
	if len(orderData.Items) == 0 {
		if orderData.ProdId == nil {
			return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Error: 'items' or 'prodId' must be provided!", nil)
		}

		// check phòng thủ: doc phải tồn tại trong collection đích
		doc, err := helper.LookupCollectionDoc(cname, *orderData.ProdId)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, fmt.Sprintf("Product does not exist in %s db", cname), err)
		}

		newOrder := model.Order{
			UserInfo:      userInfo,
			PayOnDelivery: &pod,
			Product: &model.ProductOrder{
				OrderTitle: cname,
				OrderData: model.ProductOrderData{
					OrderInfo:     *orderData.ProdId,
					PaymentStatus: "Pending",
					InspectionFee: inspectionFee,
					ToPay:         orderData.Price,
				},
			},
			Payment: nil,
		}

		if err := database.DB.Create(&newOrder).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create order", err)
		}

		// GET PROD INFO nhưng giữ nguyên giá đã submit
		if orderData.Price != nil {
			doc["price"] = *orderData.Price
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"orderInfo": fiber.Map{
				"orderNo": newOrder.ID,
				"product": doc,
				"total":   orderData.Price,
			},
		})
	}

	// đơn POD cho giỏ hàng shop
	order := model.Order{
		UserInfo:      userInfo,
		PayOnDelivery: &pod,
		Items:         orderData.Items,
		Payment:       nil,
	}

	if err := database.DB.Create(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create order", err)
	}

	// đơn POD giờ là source of truth cho lần mua này → dọn giỏ
	user.Cart = []model.CartItem{}
	if err := database.DB.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clear cart", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"orderInfo": fiber.Map{
			"orderNo":  order.ID,
			"products": orderData.Items,
			"subTotal": orderData.SubTotal,
		},
	})
}
