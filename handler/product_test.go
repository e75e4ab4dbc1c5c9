package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"game_marketplace/middleware"
	"game_marketplace/model"
	"game_marketplace/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Bulk delete: mảng id đi qua validate.Delete rồi xoá 1 lượt
func TestDeleteProducts(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "admin")

	var ids []uint
	for i, title := range []string{"PS5 Controller", "Xbox Elite Pad", "Switch Dock"} {
		prod := model.Product{Title: title, Slug: fmt.Sprintf("prod-%d", i), Category: "accessories", Price: "15000"}
		require.NoError(t, db.Create(&prod).Error)
		ids = append(ids, prod.ID)
	}

	app := fiber.New()
	app.Delete("/product", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), DeleteProducts)

	body, _ := json.Marshal(model.ArrayId{IDs: ids[:2]})
	req := jsonRequest("DELETE", "/product", body)
	req.Header.Set("Authorization", authHeader(t, admin))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count int64
	db.Model(&model.Product{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

// Mảng rỗng bị validate.Delete chặn từ middleware, không đụng tới DB
func TestDeleteProductsEmptyIds(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "admin")

	app := fiber.New()
	app.Delete("/product", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), DeleteProducts)

	body, _ := json.Marshal(map[string]any{"ids": []uint{}})
	req := jsonRequest("DELETE", "/product", body)
	req.Header.Set("Authorization", authHeader(t, admin))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// List phân trang: rows cắt theo trang, totalCount là tổng chưa cắt
func TestGetProductsPaginated(t *testing.T) {
	db := setupTestDB(t)
	seedNGN(t, db)
	for i := 0; i < 3; i++ {
		prod := model.Product{Title: fmt.Sprintf("Game %d", i), Slug: fmt.Sprintf("game-%d", i), Category: "games", Price: "15000"}
		require.NoError(t, db.Create(&prod).Error)
	}

	app := fiber.New()
	app.Get("/product", middleware.OptionalAuth(), GetProducts)

	req := httptest.NewRequest("GET", "/product?limit=2&page=1", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	payload, _ := io.ReadAll(res.Body)
	var response struct {
		Data model.ResponseCustom `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &response))

	rows, ok := response.Data.Rows.([]any)
	require.True(t, ok)
	assert.Len(t, rows, 2)
	assert.EqualValues(t, 3, response.Data.TotalCount)
}
