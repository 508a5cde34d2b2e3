package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/model"
	log "github.com/sirupsen/logrus"
)

type ReceiptSender interface {
	SendPaymentReceipt(destinationEmail, customerName string, payment model.Payment) error
}

// Checkout runs the order and confirmation steps around a Gateway.
type Checkout struct {
	db       database.Client
	gateway  Gateway
	receipts ReceiptSender
	now      func() time.Time
}

func NewCheckout(db database.Client, gateway Gateway, receipts ReceiptSender) *Checkout {
	return &Checkout{
		db:       db,
		gateway:  gateway,
		receipts: receipts,
		now:      time.Now,
	}
}

// CreateOrder prices a READY order from the course catalog.
func (c *Checkout) CreateOrder(userID, courseID string) (model.Order, error) {
	course, err := c.db.GetCourseByID(courseID)
	if err != nil {
		return model.Order{}, fmt.Errorf("loading course: %w", err)
	}

	order, err := c.db.CreateOrder(model.Order{
		OrderID:   NewOrderID(course.ID, c.now()),
		CourseID:  course.ID,
		UserID:    userID,
		OrderName: course.Title,
		Amount:    course.Price,
		Status:    model.OrderReady,
	})
	if err != nil {
		return model.Order{}, fmt.Errorf("creating order: %w", err)
	}

	return order, nil
}

// Confirm approves a payment with the gateway and records it. Once the
// gateway has approved, later bookkeeping failures are logged and the
// confirmation is still returned.
func (c *Checkout) Confirm(ctx context.Context, req ConfirmRequest) (*Confirmation, model.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, model.Payment{}, err
	}

	order, err := c.db.GetOrder(req.OrderID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, model.Payment{}, ErrOrderNotFound
	}
	if err != nil {
		return nil, model.Payment{}, fmt.Errorf("loading order: %w", err)
	}
	if order.Status == model.OrderDone {
		return nil, model.Payment{}, ErrOrderClosed
	}
	if order.Amount != req.Amount {
		return nil, model.Payment{}, ErrAmountMismatch
	}

	confirmation, err := c.gateway.Confirm(ctx, req)
	if err != nil {
		if uerr := c.db.UpdateOrderStatus(order.OrderID, model.OrderFailed); uerr != nil {
			log.Errorf("marking order %s failed: %v", order.OrderID, uerr)
		}
		return nil, model.Payment{}, err
	}

	logger := log.WithFields(log.Fields{
		"paymentKey": confirmation.PaymentKey,
		"orderId":    confirmation.OrderID,
		"amount":     confirmation.Amount,
		"method":     confirmation.Method,
		"approvedAt": confirmation.ApprovedAt,
	})
	logger.Info("payment confirmed")

	user, err := c.db.GetUserByID(order.UserID)
	if err != nil {
		logger.Errorf("loading customer %s: %v", order.UserID, err)
	}

	payment, err := c.db.SavePayment(model.Payment{
		PaymentKey:    confirmation.PaymentKey,
		OrderID:       confirmation.OrderID,
		Amount:        confirmation.Amount,
		Method:        confirmation.Method,
		Status:        confirmation.Status,
		ApprovedAt:    confirmation.ApprovedAt,
		PaymentType:   confirmation.Type,
		Currency:      confirmation.Currency,
		CustomerName:  user.DisplayName,
		CustomerEmail: user.Email,
		ProductName:   order.OrderName,
		ProductType:   "education",
		Source:        "web",
		Platform:      confirmation.Platform,
	})
	if err != nil {
		logger.Errorf("saving payment: %v", err)
	}

	if err := c.db.UpdateOrderStatus(order.OrderID, model.OrderDone); err != nil {
		logger.Errorf("marking order done: %v", err)
	}
	if user.ID != "" {
		if err := c.db.EnrollCourse(user.ID, order.CourseID); err != nil {
			logger.Errorf("enrolling user %s in course %s: %v", user.ID, order.CourseID, err)
		}
	}
	if user.Email != "" && payment.ID != "" {
		if err := c.receipts.SendPaymentReceipt(user.Email, user.DisplayName, payment); err != nil {
			logger.Errorf("sending payment receipt: %v", err)
		}
	}

	return confirmation, payment, nil
}

func (c *Checkout) Payment(id string) (model.Payment, error) {
	payment, err := c.db.GetPayment(id)
	if errors.Is(err, database.ErrNotFound) {
		return model.Payment{}, ErrPaymentNotFound
	}
	return payment, err
}

func (c *Checkout) History(email string) ([]model.Payment, error) {
	return c.db.GetPaymentsByEmail(email)
}
