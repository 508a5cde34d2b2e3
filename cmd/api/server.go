package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"ai-coding-school-go/internal/auth"
	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/model"
	"ai-coding-school-go/internal/notifications"
	"ai-coding-school-go/internal/payments"
	"ai-coding-school-go/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
)

// Dependencies are the collaborators the HTTP handlers delegate to.
type Dependencies struct {
	DB        database.Client
	Auth      *auth.Service
	Checkout  *payments.Checkout
	Store     storage.Store
	MediaDir  string
	Notifier  notifications.Notifier
	Providers []*auth.Provider
	PublicURL string
	NewRelic  *newrelic.Application
}

type Server struct {
	port       int
	db         database.Client
	auth       *auth.Service
	checkout   *payments.Checkout
	store      storage.Store
	mediaDir   string
	notifier   notifications.Notifier
	providers  map[model.Provider]*auth.Provider
	publicURL  string
	nrApp      *newrelic.Application
	validate   *validator.Validate
	httpServer *http.Server
}

func NewServer(port int, deps Dependencies) *Server {
	providers := make(map[model.Provider]*auth.Provider, len(deps.Providers))
	for _, p := range deps.Providers {
		providers[p.Name()] = p
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Server{
		port:      port,
		db:        deps.DB,
		auth:      deps.Auth,
		checkout:  deps.Checkout,
		store:     deps.Store,
		mediaDir:  deps.MediaDir,
		notifier:  deps.Notifier,
		providers: providers,
		publicURL: strings.TrimSuffix(deps.PublicURL, "/"),
		nrApp:     deps.NewRelic,
		validate:  validate,
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(logRequests)

	s.handle(router, "/home", s.home, http.MethodGet)
	s.handle(router, "/courses", s.listCourses, http.MethodGet)
	s.handle(router, "/courses/{id}", s.getCourse, http.MethodGet)

	s.handle(router, "/users", s.createUser, http.MethodPost)
	s.handle(router, "/signin", s.signIn, http.MethodPost)
	s.handle(router, "/auth/password/forgot", s.forgotPassword, http.MethodPost)
	s.handle(router, "/auth/password/reset", s.resetPassword, http.MethodPost)
	s.handle(router, "/auth/{provider}/login", s.oauthLogin, http.MethodGet)
	s.handle(router, "/auth/{provider}/callback", s.oauthCallback, http.MethodGet)

	s.handle(router, "/me", s.authenticate(s.getMe), http.MethodGet)
	s.handle(router, "/me", s.authenticate(s.updateMe), http.MethodPut)
	s.handle(router, "/me/settings", s.authenticate(s.updateSettings), http.MethodPut)

	s.handle(router, "/reviews", s.listReviews, http.MethodGet)
	s.handle(router, "/reviews", s.authenticate(s.createReview), http.MethodPost)
	s.handle(router, "/reviews/{id}/images", s.authenticate(s.uploadReviewImage), http.MethodPost)

	s.handle(router, "/payments/orders", s.authenticate(s.createOrder), http.MethodPost)
	s.handle(router, "/api/payment/confirm", s.confirmPayment, http.MethodPost)
	s.handle(router, "/api/payment/fail", s.paymentFail, http.MethodGet)
	s.handle(router, "/api/payment/history", s.authenticate(s.paymentHistory), http.MethodGet)

	s.handle(router, "/admin/stats", s.authenticate(s.requireAdmin(s.adminStats)), http.MethodGet)
	s.handle(router, "/admin/users", s.authenticate(s.requireAdmin(s.adminListUsers)), http.MethodGet)
	s.handle(router, "/admin/users/{id}/role", s.authenticate(s.requireAdmin(s.adminUpdateRole)), http.MethodPut)
	s.handle(router, "/admin/reviews", s.authenticate(s.requireAdmin(s.adminListReviews)), http.MethodGet)
	s.handle(router, "/admin/reviews/{id}", s.authenticate(s.requireAdmin(s.adminDeleteReview)), http.MethodDelete)
	s.handle(router, "/admin/reviews/{id}/images/{index}", s.authenticate(s.requireAdmin(s.adminDeleteReviewImage)), http.MethodDelete)

	if s.mediaDir != "" {
		router.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(s.mediaDir))))
	}

	return router
}

// handle registers h for path and method, reporting it to New Relic as its
// own transaction.
func (s *Server) handle(router *mux.Router, path string, h http.HandlerFunc, method string) {
	_, wrapped := newrelic.WrapHandleFunc(s.nrApp, method+" "+path, h)
	router.HandleFunc(path, wrapped).Methods(method)
}

func (s *Server) Run() error {
	address := "0.0.0.0"

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%v:%v", address, s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening requests at %v:%v", address, s.port)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// decode reads a JSON body into v and runs the struct validations.
func (s *Server) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	return s.validate.Struct(v)
}

// validationDetails lists failed fields as "field:tag".
func validationDetails(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	return strings.Join(fields, ", ")
}
