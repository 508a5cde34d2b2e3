package model

import "time"

type OrderStatus string

const (
	OrderReady  OrderStatus = "READY"
	OrderDone   OrderStatus = "DONE"
	OrderFailed OrderStatus = "FAILED"
)

// Order is created before the hosted checkout runs so that the confirmed
// amount can be checked against the course price.
type Order struct {
	OrderID   string      `json:"order_id"`
	CourseID  string      `json:"course_id"`
	UserID    string      `json:"user_id"`
	OrderName string      `json:"order_name"`
	Amount    int64       `json:"amount"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Payment struct {
	ID            string    `json:"id"`
	PaymentKey    string    `json:"payment_key"`
	OrderID       string    `json:"order_id"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	ApprovedAt    string    `json:"approved_at"`
	PaymentType   string    `json:"payment_type"`
	Currency      string    `json:"currency"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	ProductName   string    `json:"product_name"`
	ProductType   string    `json:"product_type"`
	Source        string    `json:"source"`
	Platform      string    `json:"platform"`
	CreatedAt     time.Time `json:"created_at"`
}

type Stats struct {
	TotalUsers    int   `json:"total_users"`
	RegularUsers  int   `json:"regular_users"`
	Admins        int   `json:"admins"`
	TotalReviews  int   `json:"total_reviews"`
	TotalPayments int   `json:"total_payments"`
	Revenue       int64 `json:"revenue"`
}
