//go:build integration

package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"ai-coding-school-go/internal/auth"
	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/notifications"
	"ai-coding-school-go/internal/payments"
	"ai-coding-school-go/internal/storage"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	liveServer *Server
	baseURL    string
)

func cleanupDB() {
	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBCon)
	if err != nil {
		log.Fatalf("Error opening connection to the database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"payments", "orders", "reviews", "users"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			log.Fatalf("Error cleaning up %s table: %v", table, err)
		}
	}
}

func TestMain(m *testing.M) {
	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}
	baseURL = "http://localhost:" + cfg.Port

	db, err := database.NewClient(cfg.DBCon)
	if err != nil {
		log.Fatalf("creating database client: %v", err)
	}
	defer db.Close()

	mediaDir, err := os.MkdirTemp("", "media")
	if err != nil {
		log.Fatalf("creating media dir: %v", err)
	}
	defer os.RemoveAll(mediaDir)

	store, err := storage.NewFileStore(mediaDir, baseURL+"/media")
	if err != nil {
		log.Fatalf("creating media store: %v", err)
	}

	notifier := notifications.LogSender{}
	liveServer = NewServer(port, Dependencies{
		DB:        db,
		Auth:      auth.NewService(db, auth.NewTokenIssuer(cfg.JWTKey, cfg.JWTExpiration), cfg.AdminEmailList()),
		Checkout:  payments.NewCheckout(db, payments.NewTossGateway(cfg.TossSecretKey, cfg.TossBaseURL), notifier),
		Store:     store,
		MediaDir:  store.Root(),
		Notifier:  notifier,
		PublicURL: baseURL,
	})

	go func() {
		if err := liveServer.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Allow some time for the server to start
	time.Sleep(100 * time.Millisecond)

	exitVal := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := liveServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server Shutdown Failed:%+v", err)
	}

	os.Exit(exitVal)
}

func postJSON(t *testing.T, path string, body interface{}, token string) *http.Response {
	t.Helper()

	requestBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewBuffer(requestBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Could not send POST request: %v", err)
	}
	return resp
}

func signUpAndIn(t *testing.T, email, password string) TokenResponse {
	t.Helper()

	resp := postJSON(t, "/users", CreateUserRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, "/signin", SignInRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var token TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	return token
}

func TestCreateUser(t *testing.T) {
	cleanupDB()

	resp := postJSON(t, "/users", CreateUserRequest{Email: "test@example.com", Password: "testpassword"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, "/users", CreateUserRequest{Email: "test@example.com", Password: "testpassword"}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignin(t *testing.T) {
	cleanupDB()

	token := signUpAndIn(t, "my_test_user@example.com", "my_test_password")
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "my_test_user@example.com", token.User.Email)
}

func TestGetMe(t *testing.T) {
	cleanupDB()

	token := signUpAndIn(t, "me@example.com", "my_test_password")

	req, err := http.NewRequest(http.MethodGet, baseURL+"/me", nil)
	require.NoError(t, err)
	req.Header.Add("Authorization", "Bearer "+token.Token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Could not send GET request: %v", err)
	}
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetCourses(t *testing.T) {
	resp, err := http.Get(baseURL + "/courses")
	if err != nil {
		t.Fatalf("Could not send GET request: %v", err)
	}
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetCourseByID(t *testing.T) {
	resp, err := http.Get(baseURL + "/courses/1")
	if err != nil {
		t.Fatalf("Could not send GET request: %v", err)
	}
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail struct {
		ID         string            `json:"id"`
		Curriculum []json.RawMessage `json:"curriculum"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "1", detail.ID)
	assert.Len(t, detail.Curriculum, 8)
}

func TestCreateReviewAndOrder(t *testing.T) {
	cleanupDB()

	token := signUpAndIn(t, "reviewer@example.com", "my_test_password")

	resp := postJSON(t, "/reviews", CreateReviewRequest{
		CourseName: "Python 기초", InstructorName: "김철수", StudentName: "리뷰어", Rating: 4, Content: "유익했어요",
	}, token.Token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, "/payments/orders", CreateOrderRequest{CourseID: "1"}, token.Token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, "/api/payment/confirm", payments.ConfirmRequest{PaymentKey: "pk", OrderID: "order_missing", Amount: 1000}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
