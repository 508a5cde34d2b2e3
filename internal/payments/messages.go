package payments

const unknownFailure = "알 수 없는 오류가 발생했습니다."

var failMessages = map[string]string{
	"PAY_PROCESS_CANCELED":            "사용자가 결제를 취소했습니다.",
	"PAY_PROCESS_ABORTED":             "결제 진행 중 오류가 발생했습니다.",
	"REJECT_CARD_COMPANY":             "카드사에서 결제를 거절했습니다.",
	"INVALID_CARD_COMPANY":            "유효하지 않은 카드입니다.",
	"NOT_ENOUGH_BALANCE":              "잔액이 부족합니다.",
	"EXCEED_MAX_DAILY_PAYMENT_COUNT":  "일일 결제 한도를 초과했습니다.",
	"EXCEED_MAX_DAILY_PAYMENT_AMOUNT": "일일 결제 금액을 초과했습니다.",
	"INVALID_PAYMENT_METHOD":          "유효하지 않은 결제 수단입니다.",
}

// FailMessage returns the Korean text for a failed checkout redirect. Codes
// we don't know fall back to the gateway's own message.
func FailMessage(code, message string) string {
	if m, ok := failMessages[code]; ok {
		return m
	}
	if message != "" {
		return message
	}
	return unknownFailure
}
