package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"game_marketplace/database"
	"game_marketplace/helper"
	"game_marketplace/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB thay database.DB bằng sqlite in-memory, migrate cùng
// schema với production để test handler không cần postgres thật
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// in-memory sqlite: mỗi connection là 1 db riêng nên giới hạn về 1
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Currency{},
		&model.Options{},
		&model.Product{},
		&model.Order{},
		&model.Refund{},
	))

	database.DB = db
	database.Redis = nil
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) model.User {
	t.Helper()

	user := model.User{
		Username: role + "_user",
		Email:    role + "@example.com",
		Password: "not-a-real-hash",
		Fullname: "Ada Obi",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedNGN tạo currency gốc + options default để DefaultCurrency chạy được
func seedNGN(t *testing.T, db *gorm.DB) model.Currency {
	t.Helper()

	ngn := model.Currency{Country: "Nigeria", Currency: "NGN", Rate: 1}
	require.NoError(t, db.Create(&ngn).Error)
	require.NoError(t, db.Create(&model.Options{
		CurrencyTitle:     "Default currency",
		DefaultCurrencyId: ngn.ID,
	}).Error)
	return ngn
}

func seedPaidOrder(t *testing.T, db *gorm.DB, user model.User, status string) model.Order {
	t.Helper()

	order := model.Order{
		UserInfo: model.UserInfo{
			UserId:   user.ID,
			Email:    user.Email,
			Fullname: user.Fullname,
		},
		Items: []model.OrderedProd{{ProdId: 1, Title: "PS5 Controller", Category: "accessories", Price: "15000", Qty: 1}},
		Payment: &model.PaymentInfo{
			Gateway:  "Paystack",
			TransRef: "ref_" + status,
			Method:   "card",
			Currency: "NGN",
			Rate:     1,
			Amount:   15000,
		},
		Status: status,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func authHeader(t *testing.T, user model.User) string {
	t.Helper()

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
