package handler

import (
	"strconv"

	"game_marketplace/constants"
	"game_marketplace/database"
	"game_marketplace/helper"
	"game_marketplace/model"
	"game_marketplace/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// convertedPrice quy đổi giá NGN lưu trong DB sang default currency
func convertedPrice(raw string, currency model.Currency) string {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return helper.FormatAmount(helper.CalPrice(price, currency))
}

// GetProducts liệt kê sản phẩm, giá quy đổi theo default currency.
// Hỗ trợ filter category + phân trang qua query.
func GetProducts(c *fiber.Ctx) error {
	currency, err := helper.DefaultCurrency()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	query := database.DB.Order("created_at desc")
	countQuery := database.DB.Model(&model.Product{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
		countQuery = countQuery.Where("category = ?", category)
	}

	var pagination model.Pagination
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		pagination = model.Pagination{Limit: &limit, Page: &page}
	}
	query = utils.ApplyPagination(query, pagination.Limit, pagination.Page)

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load products", err)
	}

	var totalCount int64
	if err := countQuery.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load products", err)
	}

	rows := []map[string]interface{}{}
	for _, prod := range products {
		rows = append(rows, map[string]interface{}{
			"id":        prod.ID,
			"title":     prod.Title,
			"slug":      prod.Slug,
			"category":  prod.Category,
			"imageUrls": prod.ImageUrls,
			"condition": prod.Condition,
			"price":     convertedPrice(prod.Price, currency),
			"currency":  currency.Currency,
			"stockQty":  prod.StockQty,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       rows,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

// GetProductBySlug chi tiết sản phẩm theo slug
func GetProductBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var prod model.Product
	if err := database.DB.Where("slug = ?", slug).First(&prod).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found :(", err)
	}

	currency, err := helper.DefaultCurrency()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, map[string]interface{}{
		"id":          prod.ID,
		"title":       prod.Title,
		"slug":        prod.Slug,
		"category":    prod.Category,
		"subcategory": prod.Subcategory,
		"desc":        prod.Desc,
		"imageUrls":   prod.ImageUrls,
		"condition":   prod.Condition,
		"price":       convertedPrice(prod.Price, currency),
		"currency":    currency.Currency,
		"stockQty":    prod.StockQty,
	})
}

// CreateProduct (admin) thêm sản phẩm, giá nhập theo NGN
func CreateProduct(c *fiber.Ctx) error {
	var input model.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body", err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	if !helper.ValidPriceFormat(input.Price) {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "ERROR: Invalid price format!", nil)
	}

	var prod model.Product
	copier.Copy(&prod, &input)
	prod.Slug = helper.GenerateUniqueProductSlug(database.DB, input.Title)

	if err := database.DB.Create(&prod).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create product", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, prod)
}

// DeleteProducts (admin) xoá nhiều sản phẩm theo mảng id.
// Body đã được validate.Delete() parse sẵn vào locals.
func DeleteProducts(c *fiber.Ctx) error {
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	result := database.DB.Where("id IN ?", input.IDs).Delete(&model.Product{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete products", result.Error)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"deleted": result.RowsAffected,
	})
}

// GetServiceCatalog liệt kê doc của 1 collection dịch vụ game
func GetServiceCatalog(c *fiber.Ctx) error {
	cname := c.Params("cname")
	if !model.ValidCollection(cname) {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Error: Invalid url params!", nil)
	}

	var docs []map[string]any
	if err := database.DB.Table(cname).Find(&docs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load catalog", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, docs)
}
