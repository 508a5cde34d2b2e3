package auth

import (
	"errors"
	"strings"
)

// Error values carry the same codes the hosted sign-in flows report, so
// Message can match both our own failures and provider error text.
var (
	ErrUserNotFound      = errors.New("auth/user-not-found")
	ErrWrongPassword     = errors.New("auth/wrong-password")
	ErrInvalidEmail      = errors.New("auth/invalid-email")
	ErrInvalidCredential = errors.New("auth/invalid-credential")
	ErrTooManyRequests   = errors.New("auth/too-many-requests")
	ErrEmailAlreadyInUse = errors.New("auth/email-already-in-use")
	ErrWeakPassword      = errors.New("auth/weak-password")
	ErrPopupClosed       = errors.New("auth/popup-closed-by-user")
	ErrInvalidToken      = errors.New("auth/invalid-token")
	ErrAccountExists     = errors.New("auth/account-exists-with-different-credential")
)

const defaultMessage = "로그인에 실패했습니다. 다시 시도해주세요."

var messages = []struct {
	codes   []string
	message string
}{
	{[]string{"auth/user-not-found", "user-not-found"}, "등록되지 않은 이메일입니다."},
	{[]string{"auth/wrong-password", "wrong-password"}, "비밀번호가 올바르지 않습니다."},
	{[]string{"auth/invalid-email", "invalid-email"}, "올바른 이메일 형식이 아닙니다."},
	{[]string{"auth/invalid-credential"}, "이메일 또는 비밀번호가 올바르지 않습니다."},
	{[]string{"auth/too-many-requests", "too-many-requests"}, "너무 많은 시도로 인해 일시적으로 차단되었습니다."},
	{[]string{"auth/email-already-in-use"}, "이미 사용 중인 이메일입니다."},
	{[]string{"auth/weak-password"}, "비밀번호는 6자리 이상이어야 합니다."},
	{[]string{"popup-closed-by-user", "cancelled-popup-request"}, "Google 로그인이 취소되었습니다."},
	{[]string{"auth/invalid-token"}, "인증 정보가 만료되었습니다. 다시 로그인해주세요."},
	{[]string{"auth/account-exists-with-different-credential"}, "이미 다른 로그인 방식으로 가입된 이메일입니다."},
}

// Message returns the Korean user-facing text for an authentication error.
func Message(err error) string {
	if err == nil {
		return ""
	}

	text := err.Error()
	for _, m := range messages {
		for _, code := range m.codes {
			if strings.Contains(text, code) {
				return m.message
			}
		}
	}

	return defaultMessage
}
