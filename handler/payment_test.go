package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"game_marketplace/middleware"
	"game_marketplace/model"
	"game_marketplace/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier thế chỗ gateway thật trong flow reconcile
type stubVerifier struct {
	info *model.TransInfo
	err  error
}

func (s stubVerifier) Verify(reference string) (*model.TransInfo, error) {
	return s.info, s.err
}

func withStubVerifier(t *testing.T, stub stubVerifier) {
	t.Helper()

	restore := newPaymentVerifier
	newPaymentVerifier = func() paymentVerifier { return stub }
	t.Cleanup(func() { newPaymentVerifier = restore })
}

func verifyApp() *fiber.App {
	app := fiber.New()
	app.Post("/payment/verify", middleware.Protected(), VerifyPayment)
	return app
}

// Gateway từ chối giao dịch: trả 500 kèm nguyên payload verify cho
// client đối chiếu, và tuyệt đối không được tạo đơn nào
func TestVerifyPaymentDeclinedCreatesNoOrder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "standard")
	withStubVerifier(t, stubVerifier{info: &model.TransInfo{
		Verified: true,
		Accepted: false,
		Message:  "Verification successful",
		Data: model.TransData{
			Status:          "failed",
			Reference:       "ref_declined",
			GatewayResponse: "Declined",
		},
	}})

	body, _ := json.Marshal(model.CheckoutInfo{Reference: "ref_declined"})
	req := jsonRequest("POST", "/payment/verify", body)
	req.Header.Set("Authorization", authHeader(t, user))

	res, err := verifyApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	payload, _ := io.ReadAll(res.Body)
	var echoed model.TransInfo
	require.NoError(t, json.Unmarshal(payload, &echoed))
	assert.False(t, echoed.Accepted)
	assert.Equal(t, "failed", echoed.Data.Status)

	var count int64
	db.Model(&model.Order{}).Count(&count)
	assert.Zero(t, count)
}

// Trừ kho lỗi SAU khi đơn + payment đã durable: lỗi nổi lên response
// dưới key stockError, đơn đã tạo không được rollback
func TestVerifyPaymentStockErrorDoesNotRollbackOrder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "standard")
	seedNGN(t, db)

	prod := model.Product{Title: "PS5 Controller", Slug: "ps5-controller", Category: "accessories", Price: "15000", StockQty: 5}
	require.NoError(t, db.Create(&prod).Error)

	withStubVerifier(t, stubVerifier{info: &model.TransInfo{
		Verified: true,
		Accepted: true,
		Data: model.TransData{
			Status:    "success",
			Reference: "ref_ok",
			Amount:    1500000, // kobo
			Currency:  "NGN",
			Channel:   "card",
		},
	}})

	// bảng products biến mất giữa chừng để ép BalanceStock lỗi
	require.NoError(t, db.Migrator().DropTable(&model.Product{}))

	checkout := model.CheckoutInfo{
		Reference: "ref_ok",
		UserData: model.CheckoutUserData{
			Fullname:        "Ada Obi",
			Email:           "ada@example.com",
			Phone:           "08012345678",
			DeliveryAddress: "12 Marina Rd, Lagos",
		},
		OrderData: model.CheckoutOrderData{
			SubTotal: utils.Ptr(15000.0),
			Items: []model.OrderedProd{
				{ProdId: prod.ID, Title: prod.Title, Category: prod.Category, Price: "15000", Qty: 1},
			},
		},
	}
	body, _ := json.Marshal(checkout)
	req := jsonRequest("POST", "/payment/verify", body)
	req.Header.Set("Authorization", authHeader(t, user))

	res, err := verifyApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	payload, _ := io.ReadAll(res.Body)
	var response map[string]any
	require.NoError(t, json.Unmarshal(payload, &response))
	require.Contains(t, response, "stockError")
	assert.NotEmpty(t, response["stockError"])
	require.Contains(t, response, "orderInfo")

	var count int64
	db.Model(&model.Order{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
