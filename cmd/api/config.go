package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/conf"
)

type Config struct {
	Port          string        `conf:"default:8080,env:PORT"`
	DBCon         string        `conf:"default:user=ps_user password=ps_password dbname=backend sslmode=disable host=localhost,env:DB_CONN,noprint"`
	JWTKey        string        `conf:"default:your_secret_key,env:JWT_KEY,noprint"`
	JWTExpiration time.Duration `conf:"default:168h,env:JWT_EXPIRATION"`
	PublicURL     string        `conf:"default:http://localhost:8080,env:PUBLIC_URL"`
	AdminEmails   string        `conf:"default:admin@example.com,env:ADMIN_EMAILS"`
	MediaDir      string        `conf:"default:./media,env:MEDIA_DIR"`
	LogFormat     string        `conf:"default:json,env:LOG_FORMAT"`
	LogLevel      string        `conf:"default:info,env:LOG_LEVEL"`

	Gateway       string `conf:"default:toss,env:PAYMENT_GATEWAY"`
	TossSecretKey string `conf:"env:TOSS_SECRET_KEY,noprint"`
	TossBaseURL   string `conf:"default:https://api.tosspayments.com,env:TOSS_BASE_URL"`
	StripeKey     string `conf:"env:STRIPE_KEY,noprint"`

	SendgridKey string `conf:"env:SENDGRID_KEY,noprint"`
	MailFrom    string `conf:"default:no-reply@aicodingschool.kr,env:MAIL_FROM"`

	GoogleClientID     string `conf:"env:GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `conf:"env:GOOGLE_CLIENT_SECRET,noprint"`
	KakaoClientID      string `conf:"env:KAKAO_CLIENT_ID"`
	KakaoClientSecret  string `conf:"env:KAKAO_CLIENT_SECRET,noprint"`

	NewRelicLicense string `conf:"env:NEW_RELIC_LICENSE_KEY,noprint"`
	NewRelicAppName string `conf:"default:ai-coding-school-api,env:NEW_RELIC_APP_NAME"`
}

func ReadConfig() (*Config, error) {
	var cfg Config
	help, err := conf.ParseOSArgs("APP", &cfg)

	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Gateway != "toss" && cfg.Gateway != "stripe" {
		return nil, fmt.Errorf("parsing config: unknown payment gateway %q", cfg.Gateway)
	}

	return &cfg, nil
}

func (c *Config) AdminEmailList() []string {
	var emails []string
	for _, email := range strings.Split(c.AdminEmails, ",") {
		if email = strings.TrimSpace(email); email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}
