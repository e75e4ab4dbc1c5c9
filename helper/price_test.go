package helper

import (
	"testing"

	"game_marketplace/model"

	"github.com/stretchr/testify/assert"
)

func TestCalPrice(t *testing.T) {
	ngn := model.Currency{Country: "Nigeria", Currency: "NGN", Rate: 1}
	usd := model.Currency{Country: "United States", Currency: "USD", Rate: 0.0012}

	t.Run("NGN round về số nguyên", func(t *testing.T) {
		assert.Equal(t, float64(15000), CalPrice(15000, ngn))
		assert.Equal(t, float64(15001), CalPrice(15000.5, ngn))
		assert.Equal(t, float64(15000), CalPrice(15000.4, ngn))
	})

	t.Run("currency khác round 2 chữ số", func(t *testing.T) {
		assert.Equal(t, 18.0, CalPrice(15000, usd))
		assert.Equal(t, 12.35, CalPrice(10288, usd)) // 12.3456 → 12.35
	})

	t.Run("rate 0 cho về 0", func(t *testing.T) {
		assert.Equal(t, 0.0, CalPrice(15000, model.Currency{Currency: "USD", Rate: 0}))
	})
}

func TestValidPriceFormat(t *testing.T) {
	valid := []string{"15000", "15000.5", "15000.55", "0", "0.01"}
	for _, price := range valid {
		assert.True(t, ValidPriceFormat(price), price)
	}

	invalid := []string{"15000.555", "0.001", "abc", "", "12,000"}
	for _, price := range invalid {
		assert.False(t, ValidPriceFormat(price), price)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "15000", FormatAmount(15000))
	assert.Equal(t, "12.35", FormatAmount(12.35))
	assert.Equal(t, "0.5", FormatAmount(0.5))
}
