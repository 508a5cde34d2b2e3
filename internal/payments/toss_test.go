package payments

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTossServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/confirm", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("test_sk:")), r.Header.Get("Authorization"))

		var req ConfirmRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		if req.PaymentKey == "rejected" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":"REJECT_CARD_COMPANY","message":"카드사 거절"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"paymentKey":  req.PaymentKey,
			"orderId":     req.OrderID,
			"totalAmount": req.Amount,
			"method":      "카드",
			"status":      "DONE",
			"approvedAt":  "2025-01-01T12:00:00+09:00",
			"type":        "NORMAL",
			"currency":    "KRW",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTossConfirm(t *testing.T) {
	gw := NewTossGateway("test_sk", newTossServer(t).URL)

	conf, err := gw.Confirm(context.Background(), ConfirmRequest{PaymentKey: "pk_1", OrderID: "order_1_1", Amount: 299000})
	require.NoError(t, err)
	assert.Equal(t, &Confirmation{
		PaymentKey: "pk_1",
		OrderID:    "order_1_1",
		Amount:     299000,
		Method:     "카드",
		Status:     "DONE",
		ApprovedAt: "2025-01-01T12:00:00+09:00",
		Type:       "NORMAL",
		Currency:   "KRW",
		Platform:   "toss-payments",
	}, conf)
}

func TestTossConfirmRejected(t *testing.T) {
	gw := NewTossGateway("test_sk", newTossServer(t).URL)

	_, err := gw.Confirm(context.Background(), ConfirmRequest{PaymentKey: "rejected", OrderID: "order_1_1", Amount: 1})

	var gwErr *GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusForbidden, gwErr.Status)
	assert.Equal(t, "REJECT_CARD_COMPANY", gwErr.Code)
	assert.Equal(t, "카드사 거절", gwErr.Message)
}

func TestTossConfirmMissingParams(t *testing.T) {
	gw := NewTossGateway("test_sk", "http://127.0.0.1:0")

	_, err := gw.Confirm(context.Background(), ConfirmRequest{OrderID: "order_1_1", Amount: 1})
	assert.ErrorIs(t, err, ErrMissingParams)
}
