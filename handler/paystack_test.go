package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"game_marketplace/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaystack(baseURL string) *Paystack {
	return &Paystack{
		Config: model.PaystackConfig{SecretKey: "sk_test_xxx", BaseURL: baseURL},
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestPaystackInitialize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_xxx", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload))
		// NGN nguyên nối thêm '00' thành minor units
		assert.Equal(t, "1500000", payload["amount"])
		assert.Equal(t, "ada@example.com", payload["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]string{
				"authorization_url": "https://checkout.paystack.com/abc",
				"access_code":       "access_abc",
				"reference":         "ref_abc",
			},
		})
	}))
	defer server.Close()

	res, err := testPaystack(server.URL).Initialize("ada@example.com", 15000)
	require.NoError(t, err)
	assert.Equal(t, "access_abc", res.AccessCode)
	assert.Equal(t, "ref_abc", res.Reference)
}

func TestPaystackInitializeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Invalid key",
		})
	}))
	defer server.Close()

	_, err := testPaystack(server.URL).Initialize("ada@example.com", 15000)
	assert.ErrorContains(t, err, "Invalid key")
}

func TestPaystackVerifyAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ref_abc", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":           "success",
				"reference":        "ref_abc",
				"amount":           1500000,
				"currency":         "NGN",
				"channel":          "card",
				"gateway_response": "Successful",
			},
		})
	}))
	defer server.Close()

	info, err := testPaystack(server.URL).Verify("ref_abc")
	require.NoError(t, err)
	assert.True(t, info.Verified)
	assert.True(t, info.Accepted)
	assert.Equal(t, int64(1500000), info.Data.Amount)
	assert.Equal(t, "card", info.Data.Channel)
}

func TestPaystackVerifyDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":           "failed",
				"reference":        "ref_abc",
				"gateway_response": "Declined",
			},
		})
	}))
	defer server.Close()

	info, err := testPaystack(server.URL).Verify("ref_abc")
	require.NoError(t, err)
	// gateway từ chối không phải là error, caller tự quyết không tạo đơn
	assert.False(t, info.Accepted)
	assert.Equal(t, "failed", info.Data.Status)
}

func TestPaystackVerifyBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>upstream error</html>"))
	}))
	defer server.Close()

	_, err := testPaystack(server.URL).Verify("ref_abc")
	assert.Error(t, err)
}
