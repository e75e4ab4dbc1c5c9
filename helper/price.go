package helper

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"game_marketplace/database"
	"game_marketplace/model"
)

// CalPrice quy đổi giá gốc sang currency hiển thị. NGN (đơn vị gốc)
// round về số nguyên, currency khác nhân rate rồi round 2 chữ số thập
// phân. Chỉ được áp dụng đúng 1 lần trên mỗi con số.
func CalPrice(price float64, currency model.Currency) float64 {
	if currency.Currency != model.NativeCurrency {
		return math.Round(price*currency.Rate*100) / 100
	}
	return math.Round(price * currency.Rate)
}

// ValidPriceFormat chặn giá có hơn 2 chữ số sau dấu thập phân
// trước khi được lưu xuống db
func ValidPriceFormat(price string) bool {
	if _, err := strconv.ParseFloat(price, 64); err != nil {
		return false
	}
	if i := strings.Index(price, "."); i >= 0 && len(price)-i-1 > 2 {
		return false
	}
	return true
}

// FormatAmount render amount thành decimal string để lưu vào đơn/refund
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

const defaultCurrencyCacheKey = "options:default_currency"

// DefaultCurrency đọc currency mặc định từ Options (cache redis 10 phút).
// Inject qua lời gọi tường minh thay vì fetch singleton rải rác.
func DefaultCurrency() (model.Currency, error) {
	ctx := context.Background()

	if database.Redis != nil {
		if cached, err := database.Redis.Get(ctx, defaultCurrencyCacheKey).Result(); err == nil {
			var currency model.Currency
			if err := json.Unmarshal([]byte(cached), &currency); err == nil {
				return currency, nil
			}
		}
	}

	var options model.Options
	if err := database.DB.Preload("DefaultCurrency").First(&options).Error; err != nil {
		return model.Currency{}, errors.New("default currency is not configured")
	}

	if database.Redis != nil {
		if data, err := json.Marshal(options.DefaultCurrency); err == nil {
			if err := database.Redis.Set(ctx, defaultCurrencyCacheKey, data, 10*time.Minute).Err(); err != nil {
				log.Printf("Lỗi cache currency: %v", err)
			}
		}
	}

	return options.DefaultCurrency, nil
}

// InvalidateDefaultCurrencyCache gọi khi admin đổi default currency
func InvalidateDefaultCurrencyCache() {
	if database.Redis != nil {
		database.Redis.Del(context.Background(), defaultCurrencyCacheKey)
	}
}

// CurrencyByCode tìm currency theo mã (vd "USD") cho refund snapshot
func CurrencyByCode(code string) (model.Currency, error) {
	var currency model.Currency
	if err := database.DB.Where(model.Currency{Currency: code}).First(&currency).Error; err != nil {
		return model.Currency{}, err
	}
	return currency, nil
}
