package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"game_marketplace/model"

	"github.com/joho/godotenv"
)

// Paystack Service
type Paystack struct {
	Config model.PaystackConfig
	Client *http.Client
}

func NewPaystack() *Paystack {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Không tìm thấy file .env, dùng biến môi trường hệ thống...")
	}
	baseURL := os.Getenv("PAYSTACK_URL")
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &Paystack{
		Config: model.PaystackConfig{
			SecretKey: os.Getenv("PAYSTACK_SK"),
			BaseURL:   baseURL,
		},
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationUrl string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status          string `json:"status"`
		Reference       string `json:"reference"`
		Amount          int64  `json:"amount"`
		Currency        string `json:"currency"`
		Channel         string `json:"channel"`
		GatewayResponse string `json:"gateway_response"`
	} `json:"data"`
}

// Initialize tạo transaction cho checkout "pay now". Amount là NGN
// nguyên, paystack nhận minor units nên nối thêm '00'.
func (p *Paystack) Initialize(email string, amount int64) (model.InitPayResponse, error) {
	payload, _ := json.Marshal(map[string]string{
		"email":  email,
		"amount": strconv.FormatInt(amount, 10) + "00",
	})

	req, err := http.NewRequest(http.MethodPost, p.Config.BaseURL+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return model.InitPayResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.Config.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return model.InitPayResponse{}, err
	}
	defer res.Body.Close()

	var initRes paystackInitResponse
	if err := json.NewDecoder(res.Body).Decode(&initRes); err != nil {
		return model.InitPayResponse{}, err
	}
	if !initRes.Status {
		return model.InitPayResponse{}, fmt.Errorf("paystack initialize failed: %s", initRes.Message)
	}

	return model.InitPayResponse{
		AccessCode: initRes.Data.AccessCode,
		Reference:  initRes.Data.Reference,
	}, nil
}

// Verify gọi GET /transaction/verify/:reference, mỗi lần reconcile gọi
// đúng 1 lần. Lỗi transport/parse trả về error để caller propagate,
// gateway từ chối thì Accepted=false và caller không được tạo đơn.
func (p *Paystack) Verify(reference string) (*model.TransInfo, error) {
	endpoint := p.Config.BaseURL + "/transaction/verify/" + url.PathEscape(reference)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.Config.SecretKey)

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var verifyRes paystackVerifyResponse
	if err := json.NewDecoder(res.Body).Decode(&verifyRes); err != nil {
		return nil, err
	}

	return &model.TransInfo{
		Verified: verifyRes.Status,
		Accepted: verifyRes.Data.Status == "success",
		Message:  verifyRes.Message,
		Data: model.TransData{
			Status:          verifyRes.Data.Status,
			Reference:       verifyRes.Data.Reference,
			Amount:          verifyRes.Data.Amount,
			Currency:        verifyRes.Data.Currency,
			Channel:         verifyRes.Data.Channel,
			GatewayResponse: verifyRes.Data.GatewayResponse,
		},
	}, nil
}
