package model

// Currency: rate quy đổi từ giá gốc NGN. Một khi rate đã snapshot vào
// payment của đơn cũ thì đổi rate không được ảnh hưởng số liệu cũ.
type Currency struct {
	DTO
	Country  string  `json:"country" validate:"required"`
	Currency string  `gorm:"unique" json:"currency" validate:"required,uppercase,len=3"`
	Rate     float64 `json:"rate" validate:"required,gt=0"`
}

// NativeCurrency là đơn vị gốc của platform, giá sản phẩm lưu theo đơn vị này
const NativeCurrency = "NGN"

// Options là doc cấu hình duy nhất của app, giữ default currency
type Options struct {
	DTO
	CurrencyTitle     string   `json:"currencyTitle"`
	DefaultCurrencyId uint     `json:"defaultCurrencyId"`
	DefaultCurrency   Currency `gorm:"foreignKey:DefaultCurrencyId" json:"defaultCurrency"`
}

type CreateCurrencyInput struct {
	Country  string  `json:"country" validate:"required"`
	Currency string  `json:"currency" validate:"required,len=3"`
	Rate     float64 `json:"rate" validate:"required,gt=0"`
}

type SetDefaultCurrencyInput struct {
	CurrencyId uint `json:"currencyId" validate:"required,gt=0"`
}
