package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"game_marketplace/middleware"
	"game_marketplace/model"
	"game_marketplace/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Succeeded: refund chốt Completed và đơn gốc bị đánh dấu tới hạn
// sweep ngay (to_expire = now)
func TestUpdateRefundProgressSucceeded(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, "admin")
	buyer := seedUser(t, db, "standard")
	order := seedPaidOrder(t, db, buyer, "Processing")

	refund := model.Refund{
		UserInfo:  model.RefundUserInfo{UserId: buyer.ID, Email: buyer.Email, Username: buyer.Username},
		Amount:    "15000",
		OrderInfo: order.ID,
		Reason:    "Package was damaged",
	}
	require.NoError(t, db.Create(&refund).Error)

	app := fiber.New()
	app.Patch("/refund/:refundId/progress", middleware.Protected(), middleware.AdminOnly(), validate.GetById("refundId"), UpdateRefundProgress)

	body, _ := json.Marshal(model.UpdateRefundProgressInput{Progress: "Succeeded"})
	req := jsonRequest("PATCH", fmt.Sprintf("/refund/%d/progress", refund.ID), body)
	req.Header.Set("Authorization", authHeader(t, admin))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var updated model.Refund
	require.NoError(t, db.First(&updated, refund.ID).Error)
	assert.Equal(t, "Succeeded", updated.Progress)
	assert.Equal(t, model.RefundStatusCompleted, updated.Status)

	var swept model.Order
	require.NoError(t, db.First(&swept, order.ID).Error)
	require.NotNil(t, swept.ToExpire)
	assert.WithinDuration(t, time.Now(), *swept.ToExpire, time.Minute)
}
