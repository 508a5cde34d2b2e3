package payments

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/database/databasetest"
	"ai-coding-school-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	conf *Confirmation
	err  error
	reqs []ConfirmRequest
}

func (g *fakeGateway) Confirm(_ context.Context, req ConfirmRequest) (*Confirmation, error) {
	g.reqs = append(g.reqs, req)
	return g.conf, g.err
}

type fakeReceipts struct {
	sent []string
}

func (r *fakeReceipts) SendPaymentReceipt(email, _ string, _ model.Payment) error {
	r.sent = append(r.sent, email)
	return nil
}

func TestCreateOrderUsesCoursePrice(t *testing.T) {
	db := &databasetest.Client{}
	db.On("GetCourseByID", "2").Return(model.Course{ID: "2", Title: "AI 도구로 빠른 웹 개발", Price: 450000}, nil)
	db.On("CreateOrder", mock.MatchedBy(func(o model.Order) bool {
		return o.OrderID == "order_2_1700000000000" &&
			o.Amount == 450000 &&
			o.OrderName == "AI 도구로 빠른 웹 개발" &&
			o.UserID == "u1" &&
			o.Status == model.OrderReady
	})).Return(model.Order{OrderID: "order_2_1700000000000", Amount: 450000}, nil)

	checkout := NewCheckout(db, &fakeGateway{}, &fakeReceipts{})
	checkout.now = func() time.Time { return time.UnixMilli(1700000000000) }

	order, err := checkout.CreateOrder("u1", "2")
	require.NoError(t, err)
	assert.Equal(t, "order_2_1700000000000", order.OrderID)
	db.AssertExpectations(t)
}

func TestConfirmRecordsPayment(t *testing.T) {
	order := model.Order{OrderID: "order_1_1", CourseID: "1", UserID: "u1", OrderName: "Python 기초", Amount: 299000, Status: model.OrderReady}
	user := model.User{ID: "u1", Email: "student@example.com", DisplayName: "김학습"}

	db := &databasetest.Client{}
	db.On("GetOrder", "order_1_1").Return(order, nil)
	db.On("GetUserByID", "u1").Return(user, nil)
	db.On("SavePayment", mock.MatchedBy(func(p model.Payment) bool {
		return p.PaymentKey == "pk" && p.CustomerEmail == "student@example.com" && p.ProductName == "Python 기초"
	})).Return(model.Payment{ID: "p1", PaymentKey: "pk"}, nil)
	db.On("UpdateOrderStatus", "order_1_1", model.OrderDone).Return(nil)
	db.On("EnrollCourse", "u1", "1").Return(nil)

	gw := &fakeGateway{conf: &Confirmation{PaymentKey: "pk", OrderID: "order_1_1", Amount: 299000, Status: "DONE", Platform: "toss-payments"}}
	receipts := &fakeReceipts{}

	conf, payment, err := NewCheckout(db, gw, receipts).Confirm(context.Background(), ConfirmRequest{PaymentKey: "pk", OrderID: "order_1_1", Amount: 299000})
	require.NoError(t, err)
	assert.Equal(t, "pk", conf.PaymentKey)
	assert.Equal(t, "p1", payment.ID)
	assert.Equal(t, []string{"student@example.com"}, receipts.sent)
	db.AssertExpectations(t)
}

func TestConfirmRejectsTamperedAmount(t *testing.T) {
	db := &databasetest.Client{}
	db.On("GetOrder", "order_1_1").Return(model.Order{OrderID: "order_1_1", Amount: 299000, Status: model.OrderReady}, nil)
	gw := &fakeGateway{}

	_, _, err := NewCheckout(db, gw, &fakeReceipts{}).Confirm(context.Background(), ConfirmRequest{PaymentKey: "pk", OrderID: "order_1_1", Amount: 100})
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Empty(t, gw.reqs)
}

func TestConfirmUnknownAndClosedOrders(t *testing.T) {
	db := &databasetest.Client{}
	db.On("GetOrder", "missing").Return(model.Order{}, database.ErrNotFound)
	db.On("GetOrder", "done").Return(model.Order{OrderID: "done", Amount: 1, Status: model.OrderDone}, nil)
	checkout := NewCheckout(db, &fakeGateway{}, &fakeReceipts{})

	_, _, err := checkout.Confirm(context.Background(), ConfirmRequest{PaymentKey: "pk", OrderID: "missing", Amount: 1})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, _, err = checkout.Confirm(context.Background(), ConfirmRequest{PaymentKey: "pk", OrderID: "done", Amount: 1})
	assert.ErrorIs(t, err, ErrOrderClosed)
}

func TestConfirmGatewayFailureMarksOrder(t *testing.T) {
	db := &databasetest.Client{}
	db.On("GetOrder", "order_1_1").Return(model.Order{OrderID: "order_1_1", Amount: 1, Status: model.OrderReady}, nil)
	db.On("UpdateOrderStatus", "order_1_1", model.OrderFailed).Return(nil)
	gwErr := &GatewayError{Status: http.StatusForbidden, Code: "REJECT_CARD_COMPANY"}

	_, _, err := NewCheckout(db, &fakeGateway{err: gwErr}, &fakeReceipts{}).Confirm(context.Background(), ConfirmRequest{PaymentKey: "pk", OrderID: "order_1_1", Amount: 1})
	assert.Equal(t, gwErr, err)
	db.AssertExpectations(t)
}

func TestPaymentNotFound(t *testing.T) {
	db := &databasetest.Client{}
	db.On("GetPayment", "nope").Return(model.Payment{}, database.ErrNotFound)

	_, err := NewCheckout(db, &fakeGateway{}, &fakeReceipts{}).Payment("nope")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
