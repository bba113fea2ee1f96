package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/autofix-digital/template-base/config"
	"github.com/autofix-digital/template-base/internal/model"
	"github.com/autofix-digital/template-base/internal/repository"
	"github.com/autofix-digital/template-base/pkg/database"
	"github.com/autofix-digital/template-base/pkg/mailer"
)

var testDBSeq int64

// openTestDB opens a private in-memory sqlite database with the full
// schema applied.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:    "Template Base",
			BaseURL: "http://localhost:3000",
		},
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    7 * 24 * time.Hour,
		},
	}
}

// fakeMailer records messages instead of delivering them. With fail
// set every Send returns an error.
type fakeMailer struct {
	mu   sync.Mutex
	sent []*mailer.Message
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, msg *mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("delivery refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *fakeMailer) lastMessage() *mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	return m.sent[len(m.sent)-1]
}

type authFixture struct {
	svc         *AuthService
	users       *repository.UserRepository
	refreshRepo *repository.RefreshTokenRepository
	resetRepo   *repository.PasswordResetRepository
	tokens      *TokenService
	mail        *fakeMailer
	db          *gorm.DB
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db := openTestDB(t)
	cfg := testConfig()
	tokens := NewTokenService(cfg)
	users := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	mail := &fakeMailer{}

	return &authFixture{
		svc:         NewAuthService(cfg, users, refreshRepo, resetRepo, tokens, mail),
		users:       users,
		refreshRepo: refreshRepo,
		resetRepo:   resetRepo,
		tokens:      tokens,
		mail:        mail,
		db:          db,
	}
}

// createUser inserts a user with a real bcrypt hash.
func (f *authFixture) createUser(t *testing.T, email, password string, role model.Role, active bool) *model.User {
	t.Helper()

	hash, err := f.tokens.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{
		Name:     "Test User",
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: active,
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	// gorm skips zero values for columns with defaults, force the flag
	if !active {
		if err := f.users.Update(context.Background(), user.ID, map[string]interface{}{"is_active": false}); err != nil {
			t.Fatalf("failed to deactivate user: %v", err)
		}
		user.IsActive = false
	}
	return user
}
