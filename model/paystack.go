package model

type PaystackConfig struct {
	SecretKey string
	BaseURL   string
}

type InitPayInput struct {
	Email  string `json:"email" validate:"required,email"`
	Amount int64  `json:"amount" validate:"required,gt=0"` // đơn vị NGN
}

type InitPayResponse struct {
	AccessCode string `json:"accessCode"`
	Reference  string `json:"reference"`
}

// TransData là phần data gateway trả về khi verify. Amount tính theo
// minor units (kobo), orchestrator chia 100 và round trước khi lưu.
type TransData struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Channel         string `json:"channel"`
	GatewayResponse string `json:"gateway_response,omitempty"`
}

// TransInfo: Accepted=false nghĩa là gateway từ chối giao dịch,
// caller trả lỗi kèm payload và tuyệt đối không tạo đơn.
type TransInfo struct {
	Verified bool      `json:"verified"`
	Accepted bool      `json:"accepted"`
	Message  string    `json:"message,omitempty"`
	Data     TransData `json:"data"`
}

type VerifyOfflineInput struct {
	OrderId uint    `json:"orderId" validate:"required,gt=0"`
	Receipt string  `json:"receipt" validate:"required"`
	Total   float64 `json:"total" validate:"required,gt=0"`
}
