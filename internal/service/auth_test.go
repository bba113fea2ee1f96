package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/autofix-digital/template-base/internal/dto"
	apperrors "github.com/autofix-digital/template-base/internal/errors"
	"github.com/autofix-digital/template-base/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Ana Silva",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.User.Role != model.RoleClient {
		t.Errorf("expected new accounts to be CLIENT, got %s", resp.User.Role)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected a token pair in the response")
	}

	stored, err := f.users.GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("failed to load stored user: %v", err)
	}
	if stored.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
	if !f.tokens.CheckPassword(stored.Password, "secret123") {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)

	_, err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Other Ana",
		Email:    "ana@example.com",
		Password: "different",
	})
	if !errors.Is(err, apperrors.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.User.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, resp.User.ID)
	}

	claims, err := f.tokens.VerifyAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("access token does not verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected claims for user %d, got %d", user.ID, claims.UserID)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	f := newAuthFixture(t)
	f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	f.createUser(t, "off@example.com", "secret123", model.RoleClient, false)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"unknown email", "nobody@example.com", "secret123", apperrors.ErrInvalidCredentials},
		{"wrong password", "ana@example.com", "wrong", apperrors.ErrInvalidCredentials},
		{"deactivated account", "off@example.com", "secret123", apperrors.ErrAccountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthService_Login_SingleSession(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	first, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if _, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	count, err := f.refreshRepo.CountByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to count refresh tokens: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one refresh token after relogin, got %d", count)
	}

	// the token from the first session must be dead
	if _, err := f.svc.Refresh(ctx, first.RefreshToken); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		t.Errorf("expected first session token to be revoked, got %v", err)
	}
}

func TestAuthService_Refresh_RotatesInPlace(t *testing.T) {
	f := newAuthFixture(t)
	f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	before, err := f.refreshRepo.FindByToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token missing from ledger: %v", err)
	}

	pair, err := f.svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if pair.RefreshToken == login.RefreshToken {
		t.Error("expected a new refresh token after rotation")
	}

	after, err := f.refreshRepo.FindByToken(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("rotated token missing from ledger: %v", err)
	}
	if after.ID != before.ID {
		t.Errorf("expected rotation to reuse ledger row %d, got %d", before.ID, after.ID)
	}

	// the old token string must stop working immediately
	if _, err := f.svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		t.Errorf("expected old token to be rejected, got %v", err)
	}

	// the rotated token keeps working
	if _, err := f.svc.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Errorf("rotated token should refresh again: %v", err)
	}
}

func TestAuthService_Refresh_Rejections(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// cryptographically valid but never stored in the ledger
	orphan, _, err := f.tokens.GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"access token presented as refresh", login.AccessToken},
		{"valid signature but not in ledger", orphan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Refresh(ctx, tt.token); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
				t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
			}
		})
	}
}

func TestAuthService_Refresh_ExpiredLedgerRow(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// expire the ledger row while the JWT itself stays valid
	row, err := f.refreshRepo.FindByToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token missing from ledger: %v", err)
	}
	if err := f.refreshRepo.Rotate(ctx, row.ID, login.RefreshToken, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("failed to expire ledger row: %v", err)
	}

	if _, err := f.svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		t.Errorf("expected expired row to be rejected, got %v", err)
	}

	// the dead row is removed
	count, err := f.refreshRepo.CountByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to count refresh tokens: %v", err)
	}
	if count != 0 {
		t.Errorf("expected expired row to be deleted, found %d rows", count)
	}
}

func TestAuthService_Refresh_DeactivatedUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := f.users.Update(ctx, user.ID, map[string]interface{}{"is_active": false}); err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	if _, err := f.svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, apperrors.ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}

	count, _ := f.refreshRepo.CountByUser(ctx, user.ID)
	if count != 0 {
		t.Errorf("expected sessions of a deactivated user to be revoked, found %d", count)
	}
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := f.svc.Logout(ctx, login.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	count, _ := f.refreshRepo.CountByUser(ctx, user.ID)
	if count != 0 {
		t.Errorf("expected refresh token removed on logout, found %d", count)
	}

	// idempotent, unknown and empty tokens are fine
	if err := f.svc.Logout(ctx, login.RefreshToken); err != nil {
		t.Errorf("second logout should succeed: %v", err)
	}
	if err := f.svc.Logout(ctx, ""); err != nil {
		t.Errorf("logout without a token should succeed: %v", err)
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	if err := f.svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}

	if f.mail.sentCount() != 1 {
		t.Fatalf("expected one email, got %d", f.mail.sentCount())
	}
	msg := f.mail.lastMessage()
	if msg.To != "ana@example.com" {
		t.Errorf("email sent to %s", msg.To)
	}

	var row model.PasswordResetToken
	if err := f.db.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("reset token row missing: %v", err)
	}
	if len(row.Token) != 64 {
		t.Errorf("expected 64 character reset token, got %d", len(row.Token))
	}
	if !strings.Contains(msg.HTMLBody, "reset-password?token="+row.Token) {
		t.Error("reset link with the stored token missing from email body")
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	// never reveal whether the address is registered
	if err := f.svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("expected nil for unknown email, got %v", err)
	}
	if f.mail.sentCount() != 0 {
		t.Errorf("expected no email for unknown address, got %d", f.mail.sentCount())
	}
}

func TestAuthService_ForgotPassword_InactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, false)
	ctx := context.Background()

	// same silent success as an unknown address
	if err := f.svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("expected nil for inactive account, got %v", err)
	}
	if f.mail.sentCount() != 0 {
		t.Errorf("expected no reset email for an inactive account, got %d", f.mail.sentCount())
	}

	var count int64
	f.db.Model(&model.PasswordResetToken{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected no reset token for an inactive account, found %d rows", count)
	}
}

func TestAuthService_ForgotPassword_DeliveryFailureRollsBack(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	f.mail.fail = true
	ctx := context.Background()

	err := f.svc.ForgotPassword(ctx, "ana@example.com")
	if !errors.Is(err, apperrors.ErrEmailDelivery) {
		t.Fatalf("expected ErrEmailDelivery, got %v", err)
	}

	var count int64
	f.db.Model(&model.PasswordResetToken{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected reset token rolled back after delivery failure, found %d rows", count)
	}
}

func TestAuthService_ForgotPassword_ReplacesPreviousToken(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	if err := f.svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if err := f.svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	var count int64
	f.db.Model(&model.PasswordResetToken{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected one outstanding reset token, found %d", count)
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	// an active session that must die with the reset
	if _, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := f.svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	var row model.PasswordResetToken
	if err := f.db.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("reset token row missing: %v", err)
	}

	if err := f.svc.ResetPassword(ctx, row.Token, "brandnew1"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "brandnew1"}); err != nil {
		t.Errorf("login with the new password failed: %v", err)
	}
	if _, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}

	// single use
	if err := f.svc.ResetPassword(ctx, row.Token, "another99"); !errors.Is(err, apperrors.ErrInvalidResetToken) {
		t.Errorf("expected consumed token to be rejected, got %v", err)
	}
}

func TestAuthService_ResetPassword_RevokesSessions(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := f.svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}

	var row model.PasswordResetToken
	if err := f.db.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("reset token row missing: %v", err)
	}
	if err := f.svc.ResetPassword(ctx, row.Token, "brandnew1"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := f.svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		t.Errorf("expected existing sessions to be revoked, got %v", err)
	}
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	token, err := f.tokens.GenerateResetToken()
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	row := &model.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := f.resetRepo.Create(ctx, row); err != nil {
		t.Fatalf("failed to store token: %v", err)
	}

	if err := f.svc.ResetPassword(ctx, token, "brandnew1"); !errors.Is(err, apperrors.ErrResetTokenExpired) {
		t.Fatalf("expected ErrResetTokenExpired, got %v", err)
	}

	// expired tokens are removed on first use
	var count int64
	f.db.Model(&model.PasswordResetToken{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected expired token to be deleted, found %d rows", count)
	}
}

func TestAuthService_ResetPassword_InactiveOwner(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	if err := f.svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	var row model.PasswordResetToken
	if err := f.db.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("reset token row missing: %v", err)
	}

	// account deactivated after the token was issued
	if err := f.db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	if err := f.svc.ResetPassword(ctx, row.Token, "brandnew1"); !errors.Is(err, apperrors.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive for deactivated owner, got %v", err)
	}

	// the token did not set the new password
	if err := f.db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", true).Error; err != nil {
		t.Fatalf("failed to reactivate user: %v", err)
	}
	if _, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "brandnew1"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("password changed despite inactive owner: %v", err)
	}
}

func TestAuthService_ResetPassword_DeletedOwner(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	if err := f.svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	var row model.PasswordResetToken
	if err := f.db.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("reset token row missing: %v", err)
	}

	if err := f.db.Delete(&model.User{}, user.ID).Error; err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	if err := f.svc.ResetPassword(ctx, row.Token, "brandnew1"); !errors.Is(err, apperrors.ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive for deleted owner, got %v", err)
	}
}

func TestAuthService_ResetPassword_UnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.ResetPassword(context.Background(), "deadbeef", "brandnew1")
	if !errors.Is(err, apperrors.ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	err := f.svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "brandnew1",
	})
	if !errors.Is(err, apperrors.ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}

	err = f.svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "brandnew1",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "brandnew1"}); err != nil {
		t.Errorf("login with the new password failed: %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	name := "Ana Maria Silva"
	phone := "+55 11 99999-0000"
	resp, err := f.svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if resp.Name != name || resp.Phone != phone {
		t.Errorf("profile not updated: %+v", resp)
	}
	if resp.Email != "ana@example.com" {
		t.Errorf("email changed without being part of the update, got %s", resp.Email)
	}
}

func TestAuthService_UpdateProfile_ChangesEmail(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	email := "ana.silva@example.com"
	resp, err := f.svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{Email: &email})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if resp.Email != email {
		t.Errorf("expected email %s, got %s", email, resp.Email)
	}

	if _, err := f.svc.Login(ctx, &dto.LoginRequest{Email: email, Password: "secret123"}); err != nil {
		t.Errorf("login with the new email failed: %v", err)
	}
}

func TestAuthService_UpdateProfile_EmailConflict(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	f.createUser(t, "taken@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	email := "taken@example.com"
	if _, err := f.svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{Email: &email}); !errors.Is(err, apperrors.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// keeping your own email is not a conflict
	own := "ana@example.com"
	if _, err := f.svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{Email: &own}); err != nil {
		t.Errorf("re-submitting the current email failed: %v", err)
	}
}

func TestAuthService_CleanupExpiredTokens(t *testing.T) {
	f := newAuthFixture(t)
	user := f.createUser(t, "ana@example.com", "secret123", model.RoleClient, true)
	ctx := context.Background()

	live := &model.RefreshToken{Token: "live-token", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	dead := &model.RefreshToken{Token: "dead-token", UserID: user.ID, ExpiresAt: time.Now().Add(-time.Hour)}
	for _, row := range []*model.RefreshToken{live, dead} {
		if err := f.refreshRepo.Create(ctx, row); err != nil {
			t.Fatalf("failed to insert refresh token: %v", err)
		}
	}
	deadReset := &model.PasswordResetToken{Token: "dead-reset", UserID: user.ID, ExpiresAt: time.Now().Add(-time.Hour)}
	if err := f.resetRepo.Create(ctx, deadReset); err != nil {
		t.Fatalf("failed to insert reset token: %v", err)
	}

	resp, err := f.svc.CleanupExpiredTokens(ctx)
	if err != nil {
		t.Fatalf("CleanupExpiredTokens failed: %v", err)
	}
	if resp.RefreshTokensRemoved != 1 {
		t.Errorf("expected 1 refresh token removed, got %d", resp.RefreshTokensRemoved)
	}
	if resp.ResetTokensRemoved != 1 {
		t.Errorf("expected 1 reset token removed, got %d", resp.ResetTokensRemoved)
	}

	count, _ := f.refreshRepo.CountByUser(ctx, user.ID)
	if count != 1 {
		t.Errorf("expected the live token to survive, found %d rows", count)
	}
}
