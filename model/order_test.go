package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderCheckContent(t *testing.T) {
	items := []OrderedProd{{ProdId: 1, Price: "15000", Qty: 1}}
	product := &ProductOrder{
		OrderTitle: "gamerents",
		OrderData:  ProductOrderData{OrderInfo: 3, PaymentStatus: "Paid"},
	}

	t.Run("chỉ items hợp lệ", func(t *testing.T) {
		order := Order{Items: items}
		assert.NoError(t, order.CheckContent())
	})

	t.Run("chỉ product hợp lệ", func(t *testing.T) {
		order := Order{Product: product}
		assert.NoError(t, order.CheckContent())
	})

	t.Run("cả hai cùng lúc bị chặn", func(t *testing.T) {
		order := Order{Items: items, Product: product}
		assert.ErrorIs(t, order.CheckContent(), ErrOrderContent)
	})

	t.Run("không có gì bị chặn", func(t *testing.T) {
		order := Order{}
		assert.ErrorIs(t, order.CheckContent(), ErrOrderContent)
	})
}

func TestCanonicalOrderStatus(t *testing.T) {
	status, ok := CanonicalOrderStatus("completed")
	assert.True(t, ok)
	assert.Equal(t, "Completed", status)

	status, ok = CanonicalOrderStatus("  ORDER REJECTED ")
	assert.True(t, ok)
	assert.Equal(t, "Order rejected", status)

	_, ok = CanonicalOrderStatus("Shipped")
	assert.False(t, ok)

	_, ok = CanonicalOrderStatus("")
	assert.False(t, ok)
}

func TestNeedsRefundOnDelete(t *testing.T) {
	payment := &PaymentInfo{Gateway: "Paystack", TransRef: "ref_1", Currency: "NGN", Amount: 150}

	t.Run("chưa thanh toán thì không refund", func(t *testing.T) {
		order := Order{Status: "Pending"}
		assert.False(t, order.NeedsRefundOnDelete())
	})

	t.Run("đã thanh toán chưa giao thì refund", func(t *testing.T) {
		order := Order{Payment: payment, Status: "Processing"}
		assert.True(t, order.NeedsRefundOnDelete())
	})

	t.Run("đã giao xong thì không refund", func(t *testing.T) {
		for _, status := range []string{"Completed", "Delivered", "Order rejected", "Sent", "COMPLETED"} {
			order := Order{Payment: payment, Status: status}
			assert.False(t, order.NeedsRefundOnDelete(), status)
		}
	})
}

func TestValidCollection(t *testing.T) {
	for _, cname := range []string{"products", "gamedownloads", "gamerents", "gameswaps", "gamerepairs"} {
		assert.True(t, ValidCollection(cname), cname)
	}

	for _, cname := range []string{"users", "orders", "Products", ""} {
		assert.False(t, ValidCollection(cname), cname)
	}
}
