package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google"
	ProviderKakao    Provider = "kakao"
)

type NotificationSettings struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

type PrivacySettings struct {
	ProfileVisible   bool `json:"profile_visible"`
	ShowProgress     bool `json:"show_progress"`
	ShowCertificates bool `json:"show_certificates"`
}

// DefaultNotifications and DefaultPrivacy are applied to every new account.
var (
	DefaultNotifications = NotificationSettings{Email: true}
	DefaultPrivacy       = PrivacySettings{ProfileVisible: true, ShowProgress: true, ShowCertificates: true}
)

type User struct {
	ID                 string               `json:"id"`
	Email              string               `json:"email"`
	Password           string               `json:"-"`
	DisplayName        string               `json:"display_name"`
	PhotoURL           string               `json:"photo_url"`
	Bio                string               `json:"bio"`
	Role               Role                 `json:"role"`
	Provider           Provider             `json:"provider"`
	ProviderID         string               `json:"-"`
	EnrolledCourses    []string             `json:"enrolled_courses"`
	CompletedCourses   []string             `json:"completed_courses"`
	TotalLearningHours int                  `json:"total_learning_hours"`
	Notifications      NotificationSettings `json:"notifications"`
	Privacy            PrivacySettings      `json:"privacy"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
