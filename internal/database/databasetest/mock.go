// Package databasetest provides a testify mock of database.Client.
package databasetest

import (
	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

var _ database.Client = (*Client)(nil)

func (c *Client) Close() {}

func (c *Client) CreateUser(user model.User) (model.User, error) {
	args := c.Called(user)
	return args.Get(0).(model.User), args.Error(1)
}

func (c *Client) GetUserByID(id string) (model.User, error) {
	args := c.Called(id)
	return args.Get(0).(model.User), args.Error(1)
}

func (c *Client) GetUserByEmail(email string) (model.User, error) {
	args := c.Called(email)
	return args.Get(0).(model.User), args.Error(1)
}

func (c *Client) GetUserByProvider(provider model.Provider, providerID string) (model.User, error) {
	args := c.Called(provider, providerID)
	return args.Get(0).(model.User), args.Error(1)
}

func (c *Client) ListUsers(search string) ([]model.User, error) {
	args := c.Called(search)
	return args.Get(0).([]model.User), args.Error(1)
}

func (c *Client) UpdateUserRole(id string, role model.Role) error {
	return c.Called(id, role).Error(0)
}

func (c *Client) UpdateProfile(id, displayName, bio string) (model.User, error) {
	args := c.Called(id, displayName, bio)
	return args.Get(0).(model.User), args.Error(1)
}

func (c *Client) UpdateSettings(id string, notifications model.NotificationSettings, privacy model.PrivacySettings) (model.User, error) {
	args := c.Called(id, notifications, privacy)
	return args.Get(0).(model.User), args.Error(1)
}

func (c *Client) UpdatePassword(id, passwordHash string) error {
	return c.Called(id, passwordHash).Error(0)
}

func (c *Client) LinkProvider(id string, provider model.Provider, providerID string) (model.User, error) {
	args := c.Called(id, provider, providerID)
	return args.Get(0).(model.User), args.Error(1)
}

func (c *Client) EnrollCourse(userID, courseID string) error {
	return c.Called(userID, courseID).Error(0)
}

func (c *Client) GetCourses() ([]model.Course, error) {
	args := c.Called()
	return args.Get(0).([]model.Course), args.Error(1)
}

func (c *Client) GetCourseByID(id string) (model.Course, error) {
	args := c.Called(id)
	return args.Get(0).(model.Course), args.Error(1)
}

func (c *Client) GetCurriculum(courseID string) ([]model.Lesson, error) {
	args := c.Called(courseID)
	return args.Get(0).([]model.Lesson), args.Error(1)
}

func (c *Client) CreateReview(review model.Review) (model.Review, error) {
	args := c.Called(review)
	return args.Get(0).(model.Review), args.Error(1)
}

func (c *Client) GetReview(id string) (model.Review, error) {
	args := c.Called(id)
	return args.Get(0).(model.Review), args.Error(1)
}

func (c *Client) ListReviews(search string, limit int) ([]model.Review, error) {
	args := c.Called(search, limit)
	return args.Get(0).([]model.Review), args.Error(1)
}

func (c *Client) UpdateReviewImages(id string, images, imagePaths []string) error {
	return c.Called(id, images, imagePaths).Error(0)
}

func (c *Client) DeleteReview(id string) error {
	return c.Called(id).Error(0)
}

func (c *Client) CreateOrder(order model.Order) (model.Order, error) {
	args := c.Called(order)
	return args.Get(0).(model.Order), args.Error(1)
}

func (c *Client) GetOrder(orderID string) (model.Order, error) {
	args := c.Called(orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (c *Client) UpdateOrderStatus(orderID string, status model.OrderStatus) error {
	return c.Called(orderID, status).Error(0)
}

func (c *Client) SavePayment(payment model.Payment) (model.Payment, error) {
	args := c.Called(payment)
	return args.Get(0).(model.Payment), args.Error(1)
}

func (c *Client) GetPayment(id string) (model.Payment, error) {
	args := c.Called(id)
	return args.Get(0).(model.Payment), args.Error(1)
}

func (c *Client) GetPaymentsByEmail(email string) ([]model.Payment, error) {
	args := c.Called(email)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (c *Client) Stats() (model.Stats, error) {
	args := c.Called()
	return args.Get(0).(model.Stats), args.Error(1)
}
