package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ai-coding-school-go/internal/model"
	"github.com/google/uuid"
)

func (c *client) CreateOrder(order model.Order) (model.Order, error) {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = model.OrderReady
	}

	_, err := c.db.Exec(
		`INSERT INTO orders (order_id, course_id, user_id, order_name, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.OrderID, order.CourseID, order.UserID, order.OrderName, order.Amount, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return model.Order{}, fmt.Errorf("unable to add order: %w", err)
	}

	return order, nil
}

func (c *client) GetOrder(orderID string) (model.Order, error) {
	var order model.Order

	err := c.db.QueryRow(
		`SELECT order_id, course_id, user_id, order_name, amount, status, created_at, updated_at
		FROM orders
		WHERE order_id = $1`,
		orderID,
	).Scan(&order.OrderID, &order.CourseID, &order.UserID, &order.OrderName, &order.Amount, &order.Status, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, notFound("order", "ID: "+orderID)
		}

		return model.Order{}, fmt.Errorf("unable to get order: %w", err)
	}

	return order, nil
}

func (c *client) UpdateOrderStatus(orderID string, status model.OrderStatus) error {
	res, err := c.db.Exec(
		`UPDATE orders SET status = $1, updated_at = $2 WHERE order_id = $3`,
		status, time.Now().UTC(), orderID,
	)
	if err != nil {
		return fmt.Errorf("unable to update order: %w", err)
	}

	return checkAffected(res, "order", "ID: "+orderID)
}

const paymentColumns = `id, payment_key, order_id, amount, method, status, approved_at, payment_type, currency,
	customer_name, customer_email, product_name, product_type, source, platform, created_at`

func scanPayment(row scanner) (model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.PaymentKey, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.ApprovedAt,
		&p.PaymentType, &p.Currency, &p.CustomerName, &p.CustomerEmail, &p.ProductName, &p.ProductType,
		&p.Source, &p.Platform, &p.CreatedAt)
	return p, err
}

// SavePayment stores a confirmed payment, filling the same defaults the
// checkout has always recorded for missing fields.
func (c *client) SavePayment(p model.Payment) (model.Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = "DONE"
	}
	if p.PaymentType == "" {
		p.PaymentType = "NORMAL"
	}
	if p.Currency == "" {
		p.Currency = "KRW"
	}
	if p.ProductName == "" {
		p.ProductName = "코딩 교육 서비스"
	}
	if p.ProductType == "" {
		p.ProductType = "education"
	}
	if p.Source == "" {
		p.Source = "web"
	}
	if p.Platform == "" {
		p.Platform = "toss-payments"
	}
	p.CreatedAt = time.Now().UTC()

	_, err := c.db.Exec(
		`INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.PaymentKey, p.OrderID, p.Amount, p.Method, p.Status, p.ApprovedAt, p.PaymentType, p.Currency,
		p.CustomerName, p.CustomerEmail, p.ProductName, p.ProductType, p.Source, p.Platform, p.CreatedAt,
	)
	if err != nil {
		return model.Payment{}, fmt.Errorf("unable to add payment: %w", err)
	}

	return p, nil
}

func (c *client) GetPayment(id string) (model.Payment, error) {
	payment, err := scanPayment(c.db.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Payment{}, notFound("payment", "ID: "+id)
		}

		return model.Payment{}, fmt.Errorf("unable to get payment: %w", err)
	}

	return payment, nil
}

func (c *client) GetPaymentsByEmail(email string) ([]model.Payment, error) {
	rows, err := c.db.Query(
		`SELECT `+paymentColumns+` FROM payments WHERE LOWER(customer_email) = LOWER($1) ORDER BY created_at DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
