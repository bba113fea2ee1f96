package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/autofix-digital/template-base/config"
	"github.com/autofix-digital/template-base/internal/constants"
	"github.com/autofix-digital/template-base/internal/dto"
	"github.com/autofix-digital/template-base/internal/middleware"
	"github.com/autofix-digital/template-base/internal/repository"
	"github.com/autofix-digital/template-base/internal/service"
	"github.com/autofix-digital/template-base/pkg/database"
	"github.com/autofix-digital/template-base/pkg/mailer"
)

var handlerDBSeq int64

type nopMailer struct{}

func (nopMailer) Send(context.Context, *mailer.Message) error { return nil }

// newAuthTestServer wires the real auth stack against an in-memory
// database: handler, service, repositories, middleware.
func newAuthTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", atomic.AddInt64(&handlerDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		App: config.AppConfig{Name: "Template Base", BaseURL: "http://localhost:3000"},
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    7 * 24 * time.Hour,
		},
	}

	tokens := service.NewTokenService(cfg)
	authService := service.NewAuthService(
		cfg,
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		repository.NewPasswordResetRepository(db),
		tokens,
		nopMailer{},
	)
	authHandler := NewAuthHandler(cfg, authService)
	authMw := middleware.NewAuthMiddleware(tokens)
	validMw := middleware.NewValidationMiddleware()

	r := gin.New()
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", validMw.ValidateRequestBody(func() interface{} { return &dto.RegisterRequest{} }), authHandler.Register)
		auth.POST("/login", validMw.ValidateRequestBody(func() interface{} { return &dto.LoginRequest{} }), authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/reset-password", validMw.ValidateRequestBody(func() interface{} { return &dto.ResetPasswordRequest{} }), authHandler.ResetPassword)
		auth.GET("/me", authMw.RequireAuth(), authHandler.Me)
		auth.POST("/change-password",
			authMw.RequireAuth(),
			validMw.ValidateRequestBody(func() interface{} { return &dto.ChangePasswordRequest{} }),
			authHandler.ChangePassword)
	}
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	r := newAuthTestServer(t)

	w := postJSON(t, r, "/api/v1/auth/register", gin.H{
		"name":     "Ana Silva",
		"email":    "ana@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	access := cookieByName(w, constants.CookieAccessToken)
	refresh := cookieByName(w, constants.CookieRefreshToken)
	if access == nil || access.Value == "" {
		t.Error("access cookie not set")
	}
	if refresh == nil || refresh.Value == "" {
		t.Error("refresh cookie not set")
	}
	if access != nil && !access.HttpOnly {
		t.Error("access cookie must be httpOnly")
	}

	var resp struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.User.Role != "CLIENT" {
		t.Errorf("expected role CLIENT, got %s", resp.User.Role)
	}
	if resp.AccessToken == "" {
		t.Error("access token missing from response body")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	r := newAuthTestServer(t)

	// short password is rejected with the readable field message
	w := postJSON(t, r, "/api/v1/auth/register", gin.H{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "abc",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for short password, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("password must be at least 6 characters")) {
		t.Errorf("expected the password field message in the response, got %s", w.Body.String())
	}

	w = postJSON(t, r, "/api/v1/auth/register", gin.H{
		"name":     "Ana",
		"email":    "not-an-email",
		"password": "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed email, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("email must be a valid email address")) {
		t.Errorf("expected the email field message in the response, got %s", w.Body.String())
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	r := newAuthTestServer(t)
	postJSON(t, r, "/api/v1/auth/register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})

	w := postJSON(t, r, "/api/v1/auth/login", gin.H{
		"email": "ana@example.com", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["code"] != "INVALID_CREDENTIALS" {
		t.Errorf("expected code INVALID_CREDENTIALS, got %v", resp["code"])
	}
}

func TestAuthHandler_RefreshFromCookie(t *testing.T) {
	r := newAuthTestServer(t)
	reg := postJSON(t, r, "/api/v1/auth/register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	refresh := cookieByName(reg, constants.CookieRefreshToken)
	if refresh == nil {
		t.Fatal("refresh cookie missing after register")
	}

	w := postJSON(t, r, "/api/v1/auth/refresh", nil, refresh)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	rotated := cookieByName(w, constants.CookieRefreshToken)
	if rotated == nil || rotated.Value == "" {
		t.Fatal("rotated refresh cookie not set")
	}
	if rotated.Value == refresh.Value {
		t.Error("expected a different refresh token after rotation")
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	r := newAuthTestServer(t)

	w := postJSON(t, r, "/api/v1/auth/refresh", nil, &http.Cookie{
		Name: constants.CookieRefreshToken, Value: "garbage",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	// failure clears both cookies
	access := cookieByName(w, constants.CookieAccessToken)
	if access == nil || access.MaxAge >= 0 {
		t.Error("expected access cookie cleared on refresh failure")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	r := newAuthTestServer(t)
	reg := postJSON(t, r, "/api/v1/auth/register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	refresh := cookieByName(reg, constants.CookieRefreshToken)

	w := postJSON(t, r, "/api/v1/auth/logout", nil, refresh)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// session is gone, the old refresh token no longer rotates
	w = postJSON(t, r, "/api/v1/auth/refresh", nil, refresh)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	r := newAuthTestServer(t)
	reg := postJSON(t, r, "/api/v1/auth/register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	access := cookieByName(reg, constants.CookieAccessToken)

	// confirmation mismatch never reaches the service
	w := postJSON(t, r, "/api/v1/auth/change-password", gin.H{
		"current_password": "secret123",
		"new_password":     "brandnew1",
		"confirm_password": "different1",
	}, access)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched confirmation, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["code"] != "PASSWORD_MISMATCH" {
		t.Errorf("expected code PASSWORD_MISMATCH, got %v", resp["code"])
	}

	// old password still works
	w = postJSON(t, r, "/api/v1/auth/login", gin.H{
		"email": "ana@example.com", "password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected original password untouched, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/v1/auth/change-password", gin.H{
		"current_password": "secret123",
		"new_password":     "brandnew1",
		"confirm_password": "brandnew1",
	}, access)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for matching confirmation, got %d: %s", w.Code, w.Body.String())
	}
	w = postJSON(t, r, "/api/v1/auth/login", gin.H{
		"email": "ana@example.com", "password": "brandnew1",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login with the new password failed: %d", w.Code)
	}
}

func TestAuthHandler_ResetPassword_ConfirmMismatch(t *testing.T) {
	r := newAuthTestServer(t)

	w := postJSON(t, r, "/api/v1/auth/reset-password", gin.H{
		"token":            "deadbeef",
		"password":         "brandnew1",
		"confirm_password": "different1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched confirmation, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["code"] != "PASSWORD_MISMATCH" {
		t.Errorf("expected code PASSWORD_MISMATCH, got %v", resp["code"])
	}
}

func TestAuthHandler_Me(t *testing.T) {
	r := newAuthTestServer(t)
	reg := postJSON(t, r, "/api/v1/auth/register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	access := cookieByName(reg, constants.CookieAccessToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Email != "ana@example.com" {
		t.Errorf("expected own profile, got %s", resp.Email)
	}

	// without credentials
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %d", w.Code)
	}
}
