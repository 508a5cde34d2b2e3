package payments

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrMissingParams        = errors.New("필수 파라미터가 누락되었습니다.")
	ErrAmountMismatch       = errors.New("결제 금액이 주문 금액과 일치하지 않습니다.")
	ErrOrderNotFound        = errors.New("주문 정보를 찾을 수 없습니다.")
	ErrOrderClosed          = errors.New("이미 처리된 주문입니다.")
	ErrPaymentNotFound      = errors.New("결제 정보를 찾을 수 없습니다.")
	ErrHistoryParamsMissing = errors.New("이메일 또는 결제 ID가 필요합니다.")
)

type ConfirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

func (r ConfirmRequest) Validate() error {
	if r.PaymentKey == "" || r.OrderID == "" || r.Amount <= 0 {
		return ErrMissingParams
	}
	return nil
}

// Confirmation is what a gateway reports for an approved payment.
type Confirmation struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	Method     string `json:"method"`
	Status     string `json:"status"`
	ApprovedAt string `json:"approvedAt"`
	Type       string `json:"type"`
	Currency   string `json:"currency"`
	Platform   string `json:"-"`
}

// Gateway approves a payment the customer authorized in the hosted widget.
type Gateway interface {
	Confirm(ctx context.Context, req ConfirmRequest) (*Confirmation, error)
}

// GatewayError is a rejection reported by the payment gateway.
type GatewayError struct {
	Status  int
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway rejected payment (%d %s): %s", e.Status, e.Code, e.Message)
}
