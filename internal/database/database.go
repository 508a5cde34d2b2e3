package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ai-coding-school-go/internal/model"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned, wrapped, when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type Client interface {
	Close()

	CreateUser(user model.User) (model.User, error)
	GetUserByID(id string) (model.User, error)
	GetUserByEmail(email string) (model.User, error)
	GetUserByProvider(provider model.Provider, providerID string) (model.User, error)
	ListUsers(search string) ([]model.User, error)
	UpdateUserRole(id string, role model.Role) error
	UpdateProfile(id, displayName, bio string) (model.User, error)
	UpdateSettings(id string, notifications model.NotificationSettings, privacy model.PrivacySettings) (model.User, error)
	UpdatePassword(id, passwordHash string) error
	LinkProvider(id string, provider model.Provider, providerID string) (model.User, error)
	EnrollCourse(userID, courseID string) error

	GetCourses() ([]model.Course, error)
	GetCourseByID(id string) (model.Course, error)
	GetCurriculum(courseID string) ([]model.Lesson, error)

	CreateReview(review model.Review) (model.Review, error)
	GetReview(id string) (model.Review, error)
	ListReviews(search string, limit int) ([]model.Review, error)
	UpdateReviewImages(id string, images, imagePaths []string) error
	DeleteReview(id string) error

	CreateOrder(order model.Order) (model.Order, error)
	GetOrder(orderID string) (model.Order, error)
	UpdateOrderStatus(orderID string, status model.OrderStatus) error
	SavePayment(payment model.Payment) (model.Payment, error)
	GetPayment(id string) (model.Payment, error)
	GetPaymentsByEmail(email string) ([]model.Payment, error)

	Stats() (model.Stats, error)
}

type client struct {
	db *sql.DB
}

func NewClient(connStr string) (Client, error) {
	db, err := sql.Open("postgres", connStr)

	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &client{db: db}, nil
}

func (c *client) Close() {
	err := c.db.Close()
	if err != nil {
		log.Errorf("closing database: %v", err)
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func notFound(what string, key interface{}) error {
	return fmt.Errorf("no %s found with %v: %w", what, key, ErrNotFound)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching search literally anywhere
// in the column.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

func checkAffected(res sql.Result, what string, key interface{}) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return notFound(what, key)
	}
	return nil
}

func (c *client) Stats() (model.Stats, error) {
	var stats model.Stats

	err := c.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'user'),
			(SELECT COUNT(*) FROM users WHERE role = 'admin'),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COUNT(*) FROM payments),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'DONE')
	`).Scan(&stats.TotalUsers, &stats.RegularUsers, &stats.Admins, &stats.TotalReviews, &stats.TotalPayments, &stats.Revenue)
	if err != nil {
		return model.Stats{}, fmt.Errorf("querying dashboard stats: %w", err)
	}

	return stats, nil
}
