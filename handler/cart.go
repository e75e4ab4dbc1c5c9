package handler

import (
	"game_marketplace/constants"
	"game_marketplace/database"
	"game_marketplace/helper"
	"game_marketplace/model"
	"game_marketplace/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GetMyCart trả giỏ hàng của user đang đăng nhập
func GetMyCart(c *fiber.Ctx) error {
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user.Cart)
}

// AddToCart thêm sản phẩm vào giỏ, đã có rồi thì cộng dồn qty
func AddToCart(c *fiber.Ctx) error {
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	var input model.EditCartInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	var prod model.Product
	if err := database.DB.First(&prod, input.ProdId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found :(", err)
	}

	found := false
	for i := range user.Cart {
		if user.Cart[i].ProdId == input.ProdId {
			user.Cart[i].Qty += input.Qty
			found = true
			break
		}
	}
	if !found {
		user.Cart = append(user.Cart, model.CartItem{ProdId: input.ProdId, Qty: input.Qty})
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update cart", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user.Cart)
}

// RemoveFromCart bỏ 1 sản phẩm khỏi giỏ
func RemoveFromCart(c *fiber.Ctx) error {
	claim, user := helper.GetInfoUserFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, nil)
	}

	prodId, _ := c.Locals("inputId").(int)

	cart := []model.CartItem{}
	for _, item := range user.Cart {
		if item.ProdId != uint(prodId) {
			cart = append(cart, item)
		}
	}
	user.Cart = cart

	if err := database.DB.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update cart", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user.Cart)
}
