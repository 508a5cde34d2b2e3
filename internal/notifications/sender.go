package notifications

import (
	"fmt"

	"ai-coding-school-go/internal/model"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
)

const schoolName = "AI 코딩 스쿨"

// Notifier sends the transactional emails of the site.
type Notifier interface {
	SendRegistrationEmail(destinationEmail, displayName string) error
	SendPasswordResetEmail(destinationEmail, resetURL string) error
	SendPaymentReceipt(destinationEmail, customerName string, payment model.Payment) error
}

type mailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type Sender struct {
	client mailClient
	from   *mail.Email
}

func NewSender(apiKey, fromEmail string) *Sender {
	return newSender(sendgrid.NewSendClient(apiKey), fromEmail)
}

func newSender(client mailClient, fromEmail string) *Sender {
	return &Sender{
		client: client,
		from:   mail.NewEmail(schoolName, fromEmail),
	}
}

func (s *Sender) send(destinationEmail, recipientName, subject, plainTextContent, htmlContent string) error {
	if recipientName == "" {
		recipientName = "수강생"
	}
	to := mail.NewEmail(recipientName, destinationEmail)
	message := mail.NewSingleEmail(s.from, subject, to, plainTextContent, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode != 202 {
		log.Errorf("failure sending %q email with sendgrid: %v", subject, response.Body)
	}

	return nil
}

func (s *Sender) SendRegistrationEmail(destinationEmail, displayName string) error {
	return s.send(destinationEmail, displayName,
		schoolName+"에 오신 것을 환영합니다!",
		"AI와 함께하는 코딩 교육을 시작해보세요.",
		"<strong>가입해주셔서 감사합니다!</strong>",
	)
}

func (s *Sender) SendPasswordResetEmail(destinationEmail, resetURL string) error {
	return s.send(destinationEmail, "",
		"비밀번호 재설정 안내",
		"아래 링크에서 비밀번호를 재설정하세요 (1시간 동안 유효합니다): "+resetURL,
		fmt.Sprintf(`<p>아래 링크에서 비밀번호를 재설정하세요 (1시간 동안 유효합니다).</p><p><a href="%s">비밀번호 재설정</a></p>`, resetURL),
	)
}

func (s *Sender) SendPaymentReceipt(destinationEmail, customerName string, payment model.Payment) error {
	summary := fmt.Sprintf("%s / %d %s / 주문번호 %s", payment.ProductName, payment.Amount, payment.Currency, payment.OrderID)
	return s.send(destinationEmail, customerName,
		"결제가 성공적으로 완료되었습니다.",
		summary,
		"<p><strong>결제가 성공적으로 완료되었습니다.</strong></p><p>"+summary+"</p>",
	)
}

// LogSender writes notifications to the log instead of sending them. It is
// used when no SendGrid key is configured.
type LogSender struct{}

func (LogSender) SendRegistrationEmail(destinationEmail, displayName string) error {
	log.WithFields(log.Fields{"to": destinationEmail, "name": displayName}).Info("registration email")
	return nil
}

func (LogSender) SendPasswordResetEmail(destinationEmail, resetURL string) error {
	log.WithFields(log.Fields{"to": destinationEmail, "url": resetURL}).Info("password reset email")
	return nil
}

func (LogSender) SendPaymentReceipt(destinationEmail, customerName string, payment model.Payment) error {
	log.WithFields(log.Fields{"to": destinationEmail, "name": customerName, "order": payment.OrderID}).Info("payment receipt email")
	return nil
}
