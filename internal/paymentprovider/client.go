// Package paymentprovider реализует клиент API Toss Payments.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// DefaultConfirmURL — endpoint подтверждения оплаты Toss.
const DefaultConfirmURL = "https://api.tosspayments.com/v1/payments/confirm"

// Client выполняет подтверждение оплаты в Toss Payments.
type Client struct {
	secretKey  string
	confirmURL string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Toss. Пустой confirmURL заменяется
// боевым адресом; timeout <= 0 — десятью секундами.
func NewClient(secretKey, confirmURL string, timeout time.Duration) *Client {
	if confirmURL == "" {
		confirmURL = DefaultConfirmURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		secretKey:  secretKey,
		confirmURL: confirmURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.confirmURL, &buf)
	if err != nil {
		return nil, err
	}
	// Basic auth Toss: base64 от "secretKey:" с пустым паролем.
	auth := base64.StdEncoding.EncodeToString([]byte(c.secretKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// ConfirmPayment отправляет один синхронный запрос подтверждения оплаты.
// Любой не-2xx статус или сетевая ошибка — отказ; повторов нет.
func (c *Client) ConfirmPayment(ctx context.Context, reqParams ConfirmPaymentRequest) (*ConfirmPaymentResponse, error) {
	req, err := c.newRequest(ctx, reqParams)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var confirmResp ConfirmPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&confirmResp); err != nil {
		return nil, err
	}
	return &confirmResp, nil
}
