package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/model"
	ctxutil "github.com/autofix-digital/template-base/pkg/context"
	"github.com/autofix-digital/template-base/pkg/logger"
)

// PasswordResetRepository manages single-use password reset tokens.
type PasswordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).Create(token)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create password reset token").
			Int("user_id", int(token.UserID)).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.DebugWithContext(ctx, "Password reset token stored").
		Int("user_id", int(token.UserID)).
		Log()

	return nil
}

func (r *PasswordResetRepository) FindByToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "FindByToken")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var row model.PasswordResetToken
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&row)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to look up password reset token").
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}
	return &row, nil
}

func (r *PasswordResetRepository) DeleteByID(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).Delete(&model.PasswordResetToken{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete password reset token").
			Int("token_id", int(id)).
			Err(result.Error).
			Log()
		return result.Error
	}
	return nil
}

func (r *PasswordResetRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteByUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.PasswordResetToken{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete user password reset tokens").
			Int("user_id", int(userID)).
			Err(result.Error).
			Log()
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *PasswordResetRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteExpired")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.PasswordResetToken{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to cleanup expired password reset tokens").
			Duration(duration).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.InfoWithContext(ctx, "Expired password reset tokens cleaned up").
		Int64("cleaned_count", result.RowsAffected).
		Duration(duration).
		Log()

	return result.RowsAffected, nil
}
