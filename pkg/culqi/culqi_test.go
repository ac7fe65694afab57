package culqi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCharge_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/charges", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		var req ChargeRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, 9900, req.Amount)
		assert.Equal(t, "PEN", req.CurrencyCode)
		assert.Equal(t, "tkn_test_abc", req.SourceID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "chr_test_xyz",
			"amount":        9900,
			"currency_code": "PEN",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	charge, err := client.CreateCharge(context.Background(), &ChargeRequest{
		Amount:       9900,
		CurrencyCode: "PEN",
		Email:        "owner@cafe-aroma.pe",
		SourceID:     "tkn_test_abc",
	})

	assert.NoError(t, err)
	assert.NotNil(t, charge)
	assert.Equal(t, "chr_test_xyz", charge.ID)
	assert.Equal(t, 9900, charge.Amount)
}

func TestCreateCharge_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{
			"user_message":     "Tarjeta rechazada",
			"merchant_message": "card_declined",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_123")
	charge, err := client.CreateCharge(context.Background(), &ChargeRequest{
		Amount:       9900,
		CurrencyCode: "PEN",
		SourceID:     "tkn_bad",
	})

	assert.Nil(t, charge)
	assert.Error(t, err)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "Tarjeta rechazada", apiErr.UserMessage)
	assert.Equal(t, "Tarjeta rechazada", apiErr.Error())
}

func TestCreateCharge_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "sk_test_123")
	charge, err := client.CreateCharge(context.Background(), &ChargeRequest{Amount: 100, CurrencyCode: "PEN"})

	assert.Nil(t, charge)
	assert.Error(t, err)
}
