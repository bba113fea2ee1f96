package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/config"
	"github.com/autofix-digital/template-base/internal/dto"
	apperrors "github.com/autofix-digital/template-base/internal/errors"
	"github.com/autofix-digital/template-base/internal/model"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
	"github.com/autofix-digital/template-base/pkg/mailer"
)

// AuthService implements registration, login, token rotation and the
// password reset flow.
type AuthService struct {
	users        UserStore
	refreshRepo  RefreshTokenStore
	resetRepo    PasswordResetStore
	tokens       *TokenService
	mail         mailer.Mailer
	appName      string
	resetBaseURL string
	now          func() time.Time
}

// RefreshTokenStore is the ledger the auth service consults before
// honoring any refresh token.
type RefreshTokenStore interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	Rotate(ctx context.Context, id uint, newToken string, expiresAt time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type PasswordResetStore interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// UserStore is the subset of the user repository the auth service needs.
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	CountByEmail(ctx context.Context, email string, excludeID uint) (int64, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) error
}

func NewAuthService(
	cfg *config.Config,
	users UserStore,
	refreshRepo RefreshTokenStore,
	resetRepo PasswordResetStore,
	tokens *TokenService,
	mail mailer.Mailer,
) *AuthService {
	return &AuthService{
		users:        users,
		refreshRepo:  refreshRepo,
		resetRepo:    resetRepo,
		tokens:       tokens,
		mail:         mail,
		appName:      cfg.App.Name,
		resetBaseURL: cfg.App.BaseURL,
		now:          time.Now,
	}
}

// Register creates a CLIENT account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Register")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to check existing email", err)
	}

	hash, err := s.tokens.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Role:     model.RoleClient,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to create user", err)
	}

	logger.InfoWithContext(ctx, "User registered").
		Int("user_id", int(user.ID)).
		String("email", user.Email).
		Log()

	return s.issueSession(ctx, user)
}

// Login checks credentials and starts a fresh session. Any refresh
// tokens the user previously held are revoked first.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Login")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal("failed to load user", err)
	}

	if !s.tokens.CheckPassword(user.Password, req.Password) {
		logger.WarnWithContext(ctx, "Login failed, wrong password").
			String("email", req.Email).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	logger.InfoWithContext(ctx, "User logged in").
		Int("user_id", int(user.ID)).
		String("email", user.Email).
		String("role", string(user.Role)).
		Log()

	return s.issueSession(ctx, user)
}

// issueSession revokes existing refresh tokens, generates a new pair
// and records the refresh token in the ledger.
func (s *AuthService) issueSession(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	if _, err := s.refreshRepo.DeleteByUser(ctx, user.ID); err != nil {
		return nil, apperrors.Internal("failed to revoke previous sessions", err)
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal("failed to generate access token", err)
	}

	refreshToken, refreshExpiresAt, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Internal("failed to generate refresh token", err)
	}

	row := &model.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: refreshExpiresAt,
	}
	if err := s.refreshRepo.Create(ctx, row); err != nil {
		return nil, apperrors.Internal("failed to store refresh token", err)
	}

	return &dto.AuthResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Refresh rotates a refresh token. The presented token must be
// cryptographically valid AND present in the ledger; the ledger row is
// updated in place so the old token string stops working immediately.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Refresh")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if refreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if _, err := s.tokens.VerifyRefreshToken(refreshToken); err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	row, err := s.refreshRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnWithContext(ctx, "Refresh token not in ledger").Log()
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.Internal("failed to look up refresh token", err)
	}

	if row.Expired(s.now()) {
		_ = s.refreshRepo.DeleteByToken(ctx, refreshToken)
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if !user.IsActive {
		_, _ = s.refreshRepo.DeleteByUser(ctx, user.ID)
		return nil, apperrors.ErrAccountInactive
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal("failed to generate access token", err)
	}

	newRefreshToken, refreshExpiresAt, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Internal("failed to generate refresh token", err)
	}

	if err := s.refreshRepo.Rotate(ctx, row.ID, newRefreshToken, refreshExpiresAt); err != nil {
		return nil, apperrors.Internal("failed to rotate refresh token", err)
	}

	logger.InfoWithContext(ctx, "Session refreshed").
		Int("user_id", int(user.ID)).
		Log()

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Logout removes the refresh token from the ledger. Unknown tokens are
// ignored so logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Logout")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if refreshToken == "" {
		return nil
	}
	if err := s.refreshRepo.DeleteByToken(ctx, refreshToken); err != nil {
		return apperrors.Internal("failed to revoke refresh token", err)
	}
	return nil
}

// ForgotPassword issues a reset token and emails a reset link. The
// response never reveals whether the email is registered. If delivery
// fails the freshly stored token is rolled back.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ForgotPassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Password reset requested for unknown email").
				String("email", email).
				Log()
			return nil
		}
		return apperrors.Internal("failed to load user", err)
	}

	// deactivated accounts get the same silent response, no token
	if !user.IsActive {
		logger.InfoWithContext(ctx, "Password reset requested for inactive account").
			Int("user_id", int(user.ID)).
			Log()
		return nil
	}

	// one outstanding reset token per user
	if _, err := s.resetRepo.DeleteByUser(ctx, user.ID); err != nil {
		return apperrors.Internal("failed to clear previous reset tokens", err)
	}

	token, err := s.tokens.GenerateResetToken()
	if err != nil {
		return apperrors.Internal("failed to generate reset token", err)
	}

	row := &model.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(time.Hour),
	}
	if err := s.resetRepo.Create(ctx, row); err != nil {
		return apperrors.Internal("failed to store reset token", err)
	}

	msg, err := mailer.RenderResetPassword(user.Email, mailer.ResetPasswordData{
		AppName:   s.appName,
		Name:      user.Name,
		ResetURL:  fmt.Sprintf("%s/reset-password?token=%s", s.resetBaseURL, token),
		ExpiresIn: "1 hour",
	})
	if err != nil {
		_ = s.resetRepo.DeleteByID(ctx, row.ID)
		return apperrors.Internal("failed to render reset email", err)
	}

	if err := s.mail.Send(ctx, msg); err != nil {
		// roll back so a token the user never received cannot linger
		_ = s.resetRepo.DeleteByID(ctx, row.ID)
		logger.ErrorWithContext(ctx, "Failed to deliver reset email").
			Int("user_id", int(user.ID)).
			Err(err).
			Log()
		return apperrors.ErrEmailDelivery
	}

	logger.InfoWithContext(ctx, "Password reset email sent").
		Int("user_id", int(user.ID)).
		Log()

	return nil
}

// ResetPassword consumes a reset token, sets the new password and
// revokes every session the user holds.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ResetPassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	row, err := s.resetRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.Internal("failed to look up reset token", err)
	}

	if row.Expired(s.now()) {
		_ = s.resetRepo.DeleteByID(ctx, row.ID)
		return apperrors.ErrResetTokenExpired
	}

	// the owner must still exist and be active
	user, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountInactive
		}
		return apperrors.Internal("failed to load user", err)
	}
	if !user.IsActive {
		return apperrors.ErrAccountInactive
	}

	hash, err := s.tokens.HashPassword(newPassword)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}

	if err := s.users.UpdatePassword(ctx, row.UserID, hash); err != nil {
		return apperrors.Internal("failed to update password", err)
	}

	if err := s.resetRepo.DeleteByID(ctx, row.ID); err != nil {
		return apperrors.Internal("failed to consume reset token", err)
	}

	// force re-login everywhere
	if _, err := s.refreshRepo.DeleteByUser(ctx, row.UserID); err != nil {
		return apperrors.Internal("failed to revoke sessions", err)
	}

	logger.InfoWithContext(ctx, "Password reset completed").
		Int("user_id", int(row.UserID)).
		Log()

	return nil
}

// ChangePassword verifies the current password before setting a new
// one. Other sessions stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ChangePassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Internal("failed to load user", err)
	}

	if !s.tokens.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrIncorrectPassword
	}

	hash, err := s.tokens.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperrors.Internal("failed to update password", err)
	}
	return nil
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal("failed to load user", err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile lets a user edit their own name, email, phone and
// photo. Email changes go through the same uniqueness check as the
// admin surface.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateProfile")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		count, err := s.users.CountByEmail(ctx, *req.Email, userID)
		if err != nil {
			return nil, apperrors.Internal("failed to check existing email", err)
		}
		if count > 0 {
			return nil, apperrors.ErrEmailExists
		}
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}

	if len(updates) > 0 {
		if err := s.users.Update(ctx, userID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.Internal("failed to update profile", err)
		}
	}

	return s.Me(ctx, userID)
}

// CleanupExpiredTokens removes dead rows from both ledgers.
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (*dto.CleanupResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "CleanupExpiredTokens")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	now := s.now()

	refreshRemoved, err := s.refreshRepo.DeleteExpired(ctx, now)
	if err != nil {
		return nil, apperrors.Internal("failed to cleanup refresh tokens", err)
	}

	resetRemoved, err := s.resetRepo.DeleteExpired(ctx, now)
	if err != nil {
		return nil, apperrors.Internal("failed to cleanup reset tokens", err)
	}

	return &dto.CleanupResponse{
		RefreshTokensRemoved: refreshRemoved,
		ResetTokensRemoved:   resetRemoved,
	}, nil
}
