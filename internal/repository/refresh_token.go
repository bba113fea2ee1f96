package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/model"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// RefreshTokenRepository manages the refresh token ledger. A token is
// only valid while its row exists here.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(token)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create refresh token").
			Int("user_id", int(token.UserID)).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.DebugWithContext(ctx, "Refresh token stored").
		Int("user_id", int(token.UserID)).
		Duration(duration).
		Log()

	return nil
}

func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "FindByToken")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var row model.RefreshToken
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&row)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to look up refresh token").
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}
	return &row, nil
}

// Rotate swaps the token string and expiry on an existing ledger row.
// The row id is preserved so the ledger tracks one row per session.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, id uint, newToken string, expiresAt time.Time) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Rotate")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.RefreshToken{}).Where("id = ?", id).Updates(map[string]interface{}{
		"token":      newToken,
		"expires_at": expiresAt,
	})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to rotate refresh token").
			Int("token_id", int(id)).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.DebugWithContext(ctx, "Refresh token rotated").
		Int("token_id", int(id)).
		Duration(duration).
		Log()

	return nil
}

func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteByToken")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.RefreshToken{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete refresh token").
			Err(result.Error).
			Log()
		return result.Error
	}
	return nil
}

// DeleteByUser revokes every session the user holds.
func (r *RefreshTokenRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteByUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshToken{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete user refresh tokens").
			Int("user_id", int(userID)).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.DebugWithContext(ctx, "User refresh tokens revoked").
		Int("user_id", int(userID)).
		Int64("revoked_count", result.RowsAffected).
		Log()

	return result.RowsAffected, nil
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteExpired")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.RefreshToken{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to cleanup expired refresh tokens").
			Duration(duration).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.InfoWithContext(ctx, "Expired refresh tokens cleaned up").
		Int64("cleaned_count", result.RowsAffected).
		Duration(duration).
		Log()

	return result.RowsAffected, nil
}

func (r *RefreshTokenRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RefreshToken{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
