package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRefundReason(t *testing.T) {
	for _, reason := range RefundReasons {
		assert.True(t, ValidRefundReason(reason), reason)
	}

	assert.False(t, ValidRefundReason("Changed my mind"))
	assert.False(t, ValidRefundReason("others"))
	assert.False(t, ValidRefundReason(""))
}

func TestValidRefundProgress(t *testing.T) {
	for _, progress := range RefundProgresses {
		assert.True(t, ValidRefundProgress(progress), progress)
	}

	assert.False(t, ValidRefundProgress("Done"))
	assert.False(t, ValidRefundProgress("succeeded"))
}

func TestValidOtherReason(t *testing.T) {
	ptr := func(s string) *string { return &s }

	t.Run("reason khác Others thì bỏ qua otherReason", func(t *testing.T) {
		assert.True(t, ValidOtherReason("Package was damaged", nil))
		assert.True(t, ValidOtherReason("Item out of stock", ptr("x")))
	})

	t.Run("Others bắt buộc mô tả 20-500 ký tự", func(t *testing.T) {
		assert.False(t, ValidOtherReason("Others", nil))
		assert.False(t, ValidOtherReason("Others", ptr("too short")))
		assert.True(t, ValidOtherReason("Others", ptr("the disc arrived scratched and unreadable")))
		assert.False(t, ValidOtherReason("Others", ptr(strings.Repeat("a", 501))))
		assert.True(t, ValidOtherReason("Others", ptr(strings.Repeat("a", 500))))
	})

	t.Run("khoảng trắng không tính vào độ dài", func(t *testing.T) {
		padded := "   " + strings.Repeat("a", 19) + "   "
		assert.False(t, ValidOtherReason("Others", &padded))
	})
}
