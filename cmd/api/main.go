package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ai-coding-school-go/internal/auth"
	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/notifications"
	"ai-coding-school-go/internal/payments"
	"ai-coding-school-go/internal/storage"
	"github.com/ardanlabs/conf"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}
	setupLogging(cfg)

	log.Println("starting ai coding school server")
	if out, err := conf.String(cfg); err == nil {
		log.Infof("config:\n%v", out)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	db, err := database.NewClient(cfg.DBCon)
	if err != nil {
		log.Fatalf("creating database client: %v", err)
	}
	defer db.Close()

	store, err := storage.NewFileStore(cfg.MediaDir, cfg.PublicURL+"/media")
	if err != nil {
		log.Fatalf("creating media store: %v", err)
	}

	notifier := newNotifier(cfg)
	checkout := payments.NewCheckout(db, newGateway(cfg), notifier)

	tokens := auth.NewTokenIssuer(cfg.JWTKey, cfg.JWTExpiration)

	server := NewServer(port, Dependencies{
		DB:        db,
		Auth:      auth.NewService(db, tokens, cfg.AdminEmailList()),
		Checkout:  checkout,
		Store:     store,
		MediaDir:  store.Root(),
		Notifier:  notifier,
		Providers: newProviders(cfg),
		PublicURL: cfg.PublicURL,
		NewRelic:  newRelicApp(cfg),
	})

	go func() {
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("shutting down server: %v", err)
	}
}

func setupLogging(cfg *Config) {
	if cfg.LogFormat == "text" {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func newNotifier(cfg *Config) notifications.Notifier {
	if cfg.SendgridKey == "" {
		log.Warn("SENDGRID_KEY not set, emails will only be logged")
		return notifications.LogSender{}
	}
	return notifications.NewSender(cfg.SendgridKey, cfg.MailFrom)
}

func newGateway(cfg *Config) payments.Gateway {
	if cfg.Gateway == "stripe" {
		return payments.NewStripeGateway(cfg.StripeKey, nil)
	}
	return payments.NewTossGateway(cfg.TossSecretKey, cfg.TossBaseURL)
}

func newProviders(cfg *Config) []*auth.Provider {
	var providers []*auth.Provider

	if cfg.GoogleClientID != "" {
		providers = append(providers, auth.NewGoogleProvider(auth.ProviderConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.PublicURL + "/auth/google/callback",
		}))
	}
	if cfg.KakaoClientID != "" {
		providers = append(providers, auth.NewKakaoProvider(auth.ProviderConfig{
			ClientID:     cfg.KakaoClientID,
			ClientSecret: cfg.KakaoClientSecret,
			RedirectURL:  cfg.PublicURL + "/auth/kakao/callback",
		}))
	}

	return providers
}

// newRelicApp returns nil when no license key is configured; the wrapped
// handlers accept a nil application.
func newRelicApp(cfg *Config) *newrelic.Application {
	if cfg.NewRelicLicense == "" {
		return nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.NewRelicAppName),
		newrelic.ConfigLicense(cfg.NewRelicLicense),
	)
	if err != nil {
		log.Errorf("starting new relic: %v", err)
		return nil
	}

	return app
}
