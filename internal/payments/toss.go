package payments

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
)

const DefaultTossBaseURL = "https://api.tosspayments.com"

// TossGateway confirms payments through the Toss Payments REST API.
type TossGateway struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

func NewTossGateway(secretKey, baseURL string) *TossGateway {
	if baseURL == "" {
		baseURL = DefaultTossBaseURL
	}

	return &TossGateway{
		baseURL:    baseURL,
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(secretKey+":")),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: newrelic.NewRoundTripper(http.DefaultTransport),
		},
	}
}

type tossPayment struct {
	PaymentKey  string `json:"paymentKey"`
	OrderID     string `json:"orderId"`
	TotalAmount int64  `json:"totalAmount"`
	Method      string `json:"method"`
	Status      string `json:"status"`
	ApprovedAt  string `json:"approvedAt"`
	Type        string `json:"type"`
	Currency    string `json:"currency"`
}

type tossError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (g *TossGateway) Confirm(ctx context.Context, req ConfirmRequest) (*Confirmation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding confirm request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payments/confirm", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building confirm request: %w", err)
	}
	httpReq.Header.Set("Authorization", g.authHeader)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling toss confirm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var tossErr tossError
		if err := json.NewDecoder(resp.Body).Decode(&tossErr); err != nil {
			log.Errorf("decoding toss error response: %v", err)
		}
		log.WithFields(log.Fields{
			"status":  resp.StatusCode,
			"code":    tossErr.Code,
			"message": tossErr.Message,
			"orderId": req.OrderID,
		}).Error("toss payments confirm failed")

		return nil, &GatewayError{Status: resp.StatusCode, Code: tossErr.Code, Message: tossErr.Message}
	}

	var payment tossPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("decoding toss confirm response: %w", err)
	}

	return &Confirmation{
		PaymentKey: payment.PaymentKey,
		OrderID:    payment.OrderID,
		Amount:     payment.TotalAmount,
		Method:     payment.Method,
		Status:     payment.Status,
		ApprovedAt: payment.ApprovedAt,
		Type:       payment.Type,
		Currency:   payment.Currency,
		Platform:   "toss-payments",
	}, nil
}
