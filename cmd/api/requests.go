package main

import "ai-coding-school-go/internal/model"

type CreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name" validate:"max=50"`
}

type CreateUserResponse struct {
	ID string `json:"id"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"max=50"`
	Bio         string `json:"bio" validate:"max=500"`
}

type UpdateSettingsRequest struct {
	Notifications model.NotificationSettings `json:"notifications"`
	Privacy       model.PrivacySettings      `json:"privacy"`
}

type CreateReviewRequest struct {
	CourseName     string `json:"course_name" validate:"required"`
	InstructorName string `json:"instructor_name" validate:"required"`
	StudentName    string `json:"student_name" validate:"required"`
	Rating         int    `json:"rating" validate:"min=1,max=5"`
	Content        string `json:"content" validate:"required,max=2000"`
}

type UpdateRoleRequest struct {
	Role model.Role `json:"role" validate:"oneof=admin user"`
}

type CreateOrderRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

type ConfirmPaymentResponse struct {
	Success    bool   `json:"success"`
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	Method     string `json:"method"`
	ApprovedAt string `json:"approvedAt"`
	Message    string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type CreateReviewResponse struct {
	Message string       `json:"message"`
	Review  model.Review `json:"review"`
}

type PaymentHistoryResponse struct {
	Success  bool            `json:"success"`
	Payments []model.Payment `json:"payments"`
	Count    int             `json:"count"`
}

type PaymentFailResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PaymentResponse struct {
	Success bool          `json:"success"`
	Payment model.Payment `json:"payment"`
}
