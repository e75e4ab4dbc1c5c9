package handler

import (
	"errors"
	"strings"

	"game_marketplace/constants"
	"game_marketplace/database"
	"game_marketplace/helper"
	"game_marketplace/model"
	"game_marketplace/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCurrencies liệt kê currency + currency mặc định hiện tại
func GetCurrencies(c *fiber.Ctx) error {
	var currencies []model.Currency
	if err := database.DB.Order("currency asc").Find(&currencies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load currencies", err)
	}

	defaultCurrency, err := helper.DefaultCurrency()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"currencies": currencies,
		"default":    defaultCurrency.Currency,
	})
}

// CreateCurrency (admin) thêm currency mới, code luôn uppercase
func CreateCurrency(c *fiber.Ctx) error {
	var input model.CreateCurrencyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	currency := model.Currency{
		Country:  input.Country,
		Currency: strings.ToUpper(input.Currency),
		Rate:     input.Rate,
	}
	if err := database.DB.Create(&currency).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Currency already exists", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, currency)
}

// SetDefaultCurrency (admin) đổi currency mặc định của platform.
// Đổi xong phải invalidate cache để checkout đọc rate mới.
func SetDefaultCurrency(c *fiber.Ctx) error {
	var input model.SetDefaultCurrencyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	var currency model.Currency
	if err := database.DB.First(&currency, input.CurrencyId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Currency not found :(", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var options model.Options
	if err := database.DB.First(&options).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		options = model.Options{CurrencyTitle: "default_currency"}
	}

	options.DefaultCurrencyId = currency.ID
	if err := database.DB.Save(&options).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update options", err)
	}

	helper.InvalidateDefaultCurrencyCache()

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"default": currency.Currency,
	})
}
