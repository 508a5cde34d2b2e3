package notifications

import (
	"errors"
	"testing"

	"ai-coding-school-go/internal/model"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (c *fakeClient) Send(email *mail.SGMailV3) (*rest.Response, error) {
	c.sent = append(c.sent, email)
	if c.err != nil {
		return nil, c.err
	}
	return &rest.Response{StatusCode: c.status}, nil
}

var (
	_ Notifier = (*Sender)(nil)
	_ Notifier = LogSender{}
)

func TestSendRegistrationEmail(t *testing.T) {
	client := &fakeClient{status: 202}
	s := newSender(client, "no-reply@example.com")

	require.NoError(t, s.SendRegistrationEmail("student@example.com", "김학습"))
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	assert.Equal(t, "no-reply@example.com", msg.From.Address)
	require.Len(t, msg.Personalizations, 1)
	assert.Equal(t, "student@example.com", msg.Personalizations[0].To[0].Address)
	assert.Equal(t, "김학습", msg.Personalizations[0].To[0].Name)
}

func TestSendPaymentReceiptIgnoresRejectedStatus(t *testing.T) {
	client := &fakeClient{status: 400}
	s := newSender(client, "no-reply@example.com")

	err := s.SendPaymentReceipt("student@example.com", "", model.Payment{OrderID: "order_1_1", Amount: 299000, Currency: "KRW"})
	assert.NoError(t, err)
	assert.Equal(t, "수강생", client.sent[0].Personalizations[0].To[0].Name)
}

func TestSendPropagatesTransportError(t *testing.T) {
	s := newSender(&fakeClient{err: errors.New("boom")}, "no-reply@example.com")

	assert.Error(t, s.SendPasswordResetEmail("student@example.com", "http://localhost/reset?token=x"))
}
