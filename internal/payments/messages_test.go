package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFailMessage(t *testing.T) {
	assert.Equal(t, "사용자가 결제를 취소했습니다.", FailMessage("PAY_PROCESS_CANCELED", "canceled"))
	assert.Equal(t, "잔액이 부족합니다.", FailMessage("NOT_ENOUGH_BALANCE", ""))
	assert.Equal(t, "gateway said no", FailMessage("SOMETHING_NEW", "gateway said no"))
	assert.Equal(t, "알 수 없는 오류가 발생했습니다.", FailMessage("", ""))
}

func TestNewOrderID(t *testing.T) {
	assert.Equal(t, "order_2_1700000000123", NewOrderID("2", time.UnixMilli(1700000000123)))
}

func TestConfirmRequestValidate(t *testing.T) {
	assert.NoError(t, ConfirmRequest{PaymentKey: "pk", OrderID: "o", Amount: 1}.Validate())
	assert.ErrorIs(t, ConfirmRequest{OrderID: "o", Amount: 1}.Validate(), ErrMissingParams)
	assert.ErrorIs(t, ConfirmRequest{PaymentKey: "pk", Amount: 1}.Validate(), ErrMissingParams)
	assert.ErrorIs(t, ConfirmRequest{PaymentKey: "pk", OrderID: "o"}.Validate(), ErrMissingParams)
}
