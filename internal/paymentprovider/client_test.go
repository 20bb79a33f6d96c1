package paymentprovider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPayment_Success(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody ConfirmPaymentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ConfirmPaymentResponse{
			PaymentKey:  gotBody.PaymentKey,
			OrderID:     gotBody.OrderID,
			Status:      "DONE",
			TotalAmount: gotBody.Amount,
		})
	}))
	defer srv.Close()

	client := NewClient("test_sk_abc", srv.URL, 5*time.Second)
	resp, err := client.ConfirmPayment(context.Background(), ConfirmPaymentRequest{
		PaymentKey: "pk_1",
		OrderID:    "order_1",
		Amount:     99000,
	})
	require.NoError(t, err)

	// Basic auth — base64 от секретного ключа с двоеточием и пустым паролем
	want := base64.StdEncoding.EncodeToString([]byte("test_sk_abc:"))
	assert.Equal(t, "Basic "+want, gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, 99000, gotBody.Amount)
	assert.Equal(t, "DONE", resp.Status)
	assert.Equal(t, 99000, resp.TotalAmount)
}

func TestConfirmPayment_Rejection(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "400 от Toss", status: http.StatusBadRequest},
		{name: "401 от Toss", status: http.StatusUnauthorized},
		{name: "500 от Toss", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"code":"REJECTED"}`, tt.status)
			}))
			defer srv.Close()

			client := NewClient("test_sk_abc", srv.URL, 5*time.Second)
			_, err := client.ConfirmPayment(context.Background(), ConfirmPaymentRequest{
				PaymentKey: "pk_1",
				OrderID:    "order_1",
				Amount:     99000,
			})
			assert.Error(t, err)
		})
	}
}

func TestConfirmPayment_AcceptsCreated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ConfirmPaymentResponse{Status: "DONE"})
	}))
	defer srv.Close()

	client := NewClient("test_sk_abc", srv.URL, 5*time.Second)
	resp, err := client.ConfirmPayment(context.Background(), ConfirmPaymentRequest{OrderID: "order_1"})
	require.NoError(t, err)
	assert.Equal(t, "DONE", resp.Status)
}

func TestConfirmPayment_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test_sk_abc", srv.URL, 5*time.Second)
	_, err := client.ConfirmPayment(ctx, ConfirmPaymentRequest{OrderID: "order_1"})
	assert.Error(t, err)
}
